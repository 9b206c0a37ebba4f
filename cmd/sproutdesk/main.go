// Package main is the entry point for the sproutdesk application.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sproutdesk/sproutdesk/internal/api"
	"github.com/sproutdesk/sproutdesk/internal/config"
	"github.com/sproutdesk/sproutdesk/internal/state"
	"github.com/sproutdesk/sproutdesk/internal/store"
	"github.com/sproutdesk/sproutdesk/internal/tui"
)

const version = "0.1.0"

const helpText = `sproutdesk - Terminal sticky-note board that keeps a plant alive

USAGE:
    sproutdesk [OPTIONS]

OPTIONS:
    -h, --help            Show this help message
    -v, --version         Show version information
    --init                Create a template config file
    --profile NAME        Use a specific sync profile (overrides config)
    --server URL          Use a specific sync server (overrides config)
    --set-background PATH Upload an image as the shared custom background
    --get-background PATH Download the shared custom background to a file
    --factory-reset       Delete every artifact of the profile on the server

CONFIGURATION:
    Config file: ~/.config/sproutdesk/config.yaml

    To get started:
    1. Run 'sproutdesk --init' to create a config template
    2. Point server.base_url at your sync server
    3. Run 'sproutdesk'

KEYBINDINGS:
    Navigation:
        j/k         Move down/up
        h/l         Select step
        g/G         Go to top/bottom
        1-4         Switch view (board/rules/history/greenhouse)

    Note Actions:
        a           Add new note
        A           Add recurring rule
        Space       Toggle step
        c           Convert finished note (+1 nutrient)
        d           Delete note or rule
        y           Yank note title

    Other:
        o           Organize note positions
        m           Toggle desktop/mobile layout
        ?           Show help
        q           Quit
`

const configTemplate = `# Sproutdesk Configuration
# Location: ~/.config/sproutdesk/config.yaml

server:
  # Base URL of the sync server.
  base_url: "http://localhost:3000"

  # Profile name. Every client sharing a profile shares one board.
  profile: "default"

sync:
  # How often to poll the server for remote changes.
  poll_interval: 15s

  # How long to wait after the last local edit before pushing.
  push_debounce: 2s

  # How long after a local edit pulls are suppressed.
  pull_cooldown: 5s

ui:
  # Enable Vim-style keybindings (default: true)
  vim_mode: true
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Define flags
	var (
		showHelp      bool
		showVersion   bool
		initConfig    bool
		profile       string
		server        string
		setBackground string
		getBackground string
		factoryReset  bool
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&profile, "profile", "", "Sync profile name")
	flag.StringVar(&server, "server", "", "Sync server base URL")
	flag.StringVar(&setBackground, "set-background", "", "Upload image as custom background")
	flag.StringVar(&getBackground, "get-background", "", "Download the custom background to a file")
	flag.BoolVar(&factoryReset, "factory-reset", false, "Delete all server data for this profile")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	// Handle flags
	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("sproutdesk version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	// Load configuration, then apply command-line overrides
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if server != "" {
		cfg.Server.BaseURL = server
	}
	if profile != "" {
		cfg.Server.Profile = profile
	}

	client := api.NewClient(cfg.Server.BaseURL, cfg.Server.Profile)

	if factoryReset {
		return runFactoryReset(client)
	}

	if setBackground != "" {
		return uploadBackground(client, setBackground)
	}

	if getBackground != "" {
		return downloadBackground(client, getBackground)
	}

	return runApp(cfg, client)
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Point server.base_url at your sync server")
	fmt.Println("  2. Run 'sproutdesk' to start")

	return nil
}

// runFactoryReset wipes every server-side artifact of the profile after an
// explicit confirmation.
func runFactoryReset(client *api.Client) error {
	fmt.Printf("This deletes ALL server data for profile %q: board, history, background.\n", client.Profile())
	fmt.Print("Type the profile name to confirm: ")

	var response string
	fmt.Scanln(&response)
	if response != client.Profile() {
		fmt.Println("Aborted.")
		return nil
	}

	result, err := client.FactoryReset()
	if err != nil {
		return fmt.Errorf("factory reset failed: %w", err)
	}
	fmt.Printf("Done. %d artifact(s) deleted.\n", result.Deleted)

	// The local copy is stale now; remove it so the next start begins fresh.
	if path, err := config.StatePath(); err == nil {
		os.Remove(path)
	}
	return nil
}

// uploadBackground pushes an image file to the profile's background slot.
func uploadBackground(client *api.Client, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > api.MaxImageSize {
		return fmt.Errorf("image exceeds the %d MB limit", api.MaxImageSize/(1024*1024))
	}

	if err := client.UploadImage(filepath.Base(path), data); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	fmt.Println("Background uploaded.")
	return nil
}

// downloadBackground fetches the profile's background image into a file.
func downloadBackground(client *api.Client, path string) error {
	data, ok, err := client.GetImage()
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if !ok {
		fmt.Println("No custom background set for this profile.")
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	fmt.Printf("Background saved to %s\n", path)
	return nil
}

// runApp starts the main TUI application.
func runApp(cfg *config.Config, client *api.Client) error {
	statePath, err := config.StatePath()
	if err != nil {
		return fmt.Errorf("failed to resolve state path: %w", err)
	}
	local := store.New(statePath)

	st, err := local.Load(time.Now())
	if err != nil {
		return fmt.Errorf("failed to load local state: %w", err)
	}
	container := state.New(st)

	app := tui.NewApp(cfg, client, container, local)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
