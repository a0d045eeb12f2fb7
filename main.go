// adda TUI - A terminal adda with desi AI characters.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/adda-tui/internal/anthropic"
	"github.com/jeranaias/adda-tui/internal/auth"
	"github.com/jeranaias/adda-tui/internal/chat"
	"github.com/jeranaias/adda-tui/internal/config"
	"github.com/jeranaias/adda-tui/internal/storage"
	"github.com/jeranaias/adda-tui/internal/store"
	"github.com/jeranaias/adda-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			fmt.Printf("adda %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "login":
			runLogin(args[1:])
			return
		case "signup":
			runSignup(args[1:])
			return
		case "logout":
			runLogout()
			return
		case "export":
			runExport(args[1:])
			return
		case "help", "--help", "-h":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
			printUsage()
			os.Exit(1)
		}
	}

	runTUI()
}

func printUsage() {
	fmt.Println(`adda - chai, chat, aur characters

Usage:
  adda            start the chat interface
  adda login      sign in to sync your profile
  adda signup     create an account
  adda logout     sign out
  adda export     list chats, or save a transcript: adda export <chat-id>
  adda version    print version`)
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// bootstrap loads config and wires the dependencies shared by every command.
func bootstrap() (*config.Config, *storage.Store, *auth.Manager, *store.ChatStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	dbPath := cfg.Storage.DatabasePath
	if dbPath == "" {
		dbPath = storage.DefaultPath()
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	authClient := auth.NewClient(&auth.ClientConfig{
		BaseURL: cfg.Supabase.URL,
		AnonKey: cfg.Supabase.AnonKey,
	})
	users := auth.NewManager(authClient, db)
	chats := store.NewChatStore(db)

	ctx := context.Background()
	if err := users.Hydrate(ctx); err != nil {
		log.Printf("adda: profile hydrate failed: %v", err)
	}
	if err := chats.Hydrate(ctx); err != nil {
		log.Printf("adda: chat hydrate failed: %v", err)
	}

	return cfg, db, users, chats, nil
}

func runTUI() {
	cfg, db, users, chats, err := bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.API.Key == "" {
		fmt.Fprintln(os.Stderr, "Error: no API key configured.")
		fmt.Fprintln(os.Stderr, "Set ADDA_API_KEY, or add it to ~/.adda/config.toml under [api].")
		os.Exit(1)
	}

	client := anthropic.NewClientWithConfig(&anthropic.ClientConfig{
		APIKey:            cfg.API.Key,
		BaseURL:           cfg.API.BaseURL,
		Model:             cfg.API.Model,
		MaxTokens:         cfg.API.MaxTokens,
		Temperature:       cfg.API.Temperature,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	})

	opts := chat.Options{
		ContextMessages:   cfg.Chat.ContextMessages,
		MinCharacterDelay: time.Duration(cfg.Chat.MinCharacterDelayMs) * time.Millisecond,
		MaxCharacterDelay: time.Duration(cfg.Chat.MaxCharacterDelayMs) * time.Millisecond,
	}
	orch := chat.New(chats, client, func() string {
		name := users.Profile().Name
		if name == "" {
			return "Friend"
		}
		return name
	}, opts, nil)

	// Live-reload model settings when the config file changes.
	if path, err := config.ConfigPath(); err == nil {
		w, werr := config.NewWatcher(path, func(fresh *config.Config) {
			client.SetModelParams(fresh.API.Model, fresh.API.MaxTokens, fresh.API.Temperature)
		})
		if werr == nil {
			if err := w.Watch(); err != nil {
				log.Printf("adda: config watcher failed: %v", err)
			} else {
				defer w.Close()
			}
		}
	}

	app := ui.NewApp(chats, orch, users)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// ACCOUNT COMMANDS
// =============================================================================

func runLogin(args []string) {
	_, db, users, _, err := bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	email, password := promptCredentials(args)
	if err := users.SignIn(context.Background(), email, password); err != nil {
		fmt.Fprintf(os.Stderr, "Sign-in failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s. Welcome back!\n", email)
}

func runSignup(args []string) {
	_, db, users, _, err := bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	email, password := promptCredentials(args)
	verified, err := users.SignUp(context.Background(), email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sign-up failed: %v\n", err)
		os.Exit(1)
	}
	if !verified {
		fmt.Println("Account created. Check your email to verify, then run: adda login")
		return
	}
	fmt.Println("Account created and signed in.")
}

func runLogout() {
	_, db, users, _, err := bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	users.SignOut(context.Background())
	fmt.Println("Signed out. Your chats stay on this machine.")
}

// runExport lists chats with no args, or writes a Markdown transcript for
// the given chat ID.
func runExport(args []string) {
	_, db, _, chats, err := bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if len(args) == 0 {
		fmt.Print(store.FormatChatList(chats.SortedChats()))
		fmt.Println("\nRun: adda export <chat-id>")
		return
	}

	chatID := args[0]
	ch := chats.GetChat(chatID)
	if ch == nil {
		fmt.Fprintf(os.Stderr, "Error: chat %s not found\n", chatID)
		os.Exit(1)
	}

	exporter, err := store.NewExporter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	path, err := exporter.SaveMarkdown(ch, chats.Messages(chatID))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved transcript to %s\n", path)
}

// promptCredentials takes the email from args or a prompt, and always
// prompts for the password.
func promptCredentials(args []string) (email, password string) {
	reader := bufio.NewReader(os.Stdin)

	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Print("Email: ")
		line, _ := reader.ReadString('\n')
		email = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	line, _ := reader.ReadString('\n')
	password = strings.TrimSpace(line)
	return email, password
}
