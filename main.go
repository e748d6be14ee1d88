// trainrag - Local conversation manager for document chat sessions.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jeranaias/trainrag/internal/chat"
	"github.com/jeranaias/trainrag/internal/config"
	"github.com/jeranaias/trainrag/internal/logging"
	"github.com/jeranaias/trainrag/internal/model"
	"github.com/jeranaias/trainrag/internal/storage"
	"github.com/jeranaias/trainrag/internal/store"
	"github.com/jeranaias/trainrag/internal/util"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "version":
		fmt.Printf("trainrag %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	case "help", "", "-h", "--help":
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewLogrusSink(cfg.LogLevel)
	kv, err := openKV(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := chat.NewServiceWith(log.WithComponent("chat"), chat.Options{
		MaxSearchResults: cfg.Search.MaxResults,
	})
	st := store.New(svc, kv, log.WithComponent("store"))
	st.Load()
	defer st.Close()

	st.ApplyRetention(store.RetentionPolicy{
		AutoArchive:      cfg.Retention.AutoArchive,
		ArchiveAfterDays: cfg.Retention.ArchiveAfterDays,
		AutoDelete:       cfg.Retention.AutoDelete,
		DeleteAfterDays:  cfg.Retention.DeleteAfterDays,
	})

	var cmdErr error
	switch cmd {
	case "new":
		cmdErr = cmdNew(st, args)
	case "list":
		cmdErr = cmdList(st, args)
	case "search":
		cmdErr = cmdSearch(st, args)
	case "summary":
		cmdErr = cmdSummary(st, args)
	case "export":
		cmdErr = cmdExport(st, cfg, args)
	case "watch":
		cmdErr = cmdWatch(st, kv, log)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`trainrag - local conversation manager for document chat

Usage:
  trainrag <command> [arguments]

Commands:
  new [name]                 Create a conversation
  list [--all]               List conversations (default: active only)
  search <term>              Search conversations
  summary <conversation-id>  Generate a conversation summary
  export [--format=F] [ids]  Export conversations (markdown, json, txt)
  watch                      Reload when the snapshot changes on disk
  version                    Show version information
  help                       Show this help
`)
}

// openKV builds the configured persistence backend.
func openKV(cfg *config.Config) (storage.KV, error) {
	path, err := cfg.DataPath()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Storage.Backend, "sqlite") {
		return storage.NewSQLiteKV(path)
	}
	return storage.NewFileKV(path)
}

// =============================================================================
// COMMANDS
// =============================================================================

func cmdNew(st *store.Store, args []string) error {
	name := strings.Join(args, " ")
	conv := st.CreateConversation(name)
	fmt.Printf("Created conversation %s (%s)\n", conv.Name, conv.ID)
	return nil
}

func cmdList(st *store.Store, args []string) error {
	state := st.Snapshot()
	if len(args) > 0 && args[0] == "--all" {
		state.Filters.Status = []model.ConversationStatus{
			model.StatusActive, model.StatusArchived, model.StatusDeleted,
		}
	}

	conversations := state.FilteredConversations()
	if len(conversations) == 0 {
		fmt.Println("No conversations.")
		return nil
	}

	for _, conv := range conversations {
		marker := " "
		if conv.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%s %-36s  %-8s  %3d msgs  %s  %s\n",
			marker, conv.ID, conv.Status, conv.MessageCount(),
			conv.LastActivity.Format("2006-01-02 15:04"),
			util.TruncateRunes(conv.Name, 40))
	}
	return nil
}

func cmdSearch(st *store.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: trainrag search <term>")
	}

	results, err := st.SearchConversations(model.SearchQuery{
		Term:  strings.Join(args, " "),
		Scope: model.ScopeAll,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d results (%s)\n", results.TotalCount, results.ExecutionTime)
	for _, r := range results.Results {
		fmt.Printf("  [%.2f] %s: %s\n", r.Relevance, r.Title, util.TruncateRunes(r.Snippet, 80))
	}
	for _, s := range results.Suggestions {
		fmt.Printf("  Sugerencia: %s\n", s)
	}
	return nil
}

func cmdSummary(st *store.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: trainrag summary <conversation-id>")
	}

	sum, err := st.GenerateSummary(args[0])
	if err != nil {
		return err
	}

	fmt.Println(sum.Content)
	fmt.Printf("\nConfianza: %.0f%%\n", sum.Confidence*100)
	if len(sum.KeyTopics) > 0 {
		fmt.Printf("Temas: %s\n", strings.Join(sum.KeyTopics, ", "))
	}
	return nil
}

// cmdWatch reloads the store whenever another process rewrites the snapshot.
// Useful alongside a second trainrag instance or a sync tool.
func cmdWatch(st *store.Store, kv storage.KV, log *logging.LogrusSink) error {
	fileKV, ok := kv.(*storage.FileKV)
	if !ok {
		return fmt.Errorf("watch requires the file storage backend")
	}

	w, err := storage.NewWatcher(fileKV, storage.SnapshotKey, func() {
		st.Load()
		fmt.Printf("Snapshot recargado: %d conversaciones\n", len(st.Snapshot().Conversations))
	}, log.WithComponent("watcher"))
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Println("Watching for snapshot changes. Ctrl+C to stop.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func cmdExport(st *store.Store, cfg *config.Config, args []string) error {
	opts := model.ExportOptions{
		Format:            model.ExportFormat(cfg.Export.DefaultFormat),
		IncludeMetadata:   true,
		IncludeSources:    true,
		IncludeTimestamps: true,
	}

	for _, arg := range args {
		if f, ok := strings.CutPrefix(arg, "--format="); ok {
			opts.Format = model.ExportFormat(f)
			continue
		}
		opts.Conversations = append(opts.Conversations, arg)
	}

	result, err := st.Export(opts)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.Export.OutputDir, result.Filename)
	if err := util.AtomicWriteFile(outPath, result.Content, 0o644); err != nil {
		return err
	}

	fmt.Printf("Exported %d bytes to %s\n", result.Size, outPath)
	return nil
}
