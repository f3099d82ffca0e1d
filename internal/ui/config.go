package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lfreitas/divan/internal/config"
	"github.com/lfreitas/divan/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  divan config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.API.BaseURL = promptValue(reader, "API base URL", cfg.API.BaseURL)
	cfg.API.TimeoutSeconds = promptInt(reader, "API timeout (seconds)", cfg.API.TimeoutSeconds)
	cfg.Schedule.DefaultStart = promptValue(reader, "Default window start", cfg.Schedule.DefaultStart)
	cfg.Schedule.DefaultEnd = promptValue(reader, "Default window end", cfg.Schedule.DefaultEnd)
	cfg.Schedule.DefaultIntervalMinutes = promptInt(reader, "Default slot length (minutes)", cfg.Schedule.DefaultIntervalMinutes)
	cfg.Schedule.CancellationPolicyDays = promptInt(reader, "Cancellation policy (days)", cfg.Schedule.CancellationPolicyDays)
	cfg.LLM.Provider = promptValue(reader, "LLM provider (none, ollama, copilot)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, "LLM base URL (Ollama)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[api]")
	fmt.Printf("  base_url        = %s\n", cfg.API.BaseURL)
	fmt.Printf("  timeout_seconds = %d\n", cfg.API.TimeoutSeconds)
	fmt.Println("\n[schedule]")
	fmt.Printf("  default_start            = %s\n", cfg.Schedule.DefaultStart)
	fmt.Printf("  default_end              = %s\n", cfg.Schedule.DefaultEnd)
	fmt.Printf("  default_interval_minutes = %d\n", cfg.Schedule.DefaultIntervalMinutes)
	fmt.Printf("  cancellation_policy_days = %d\n", cfg.Schedule.CancellationPolicyDays)
	fmt.Println("\n[llm]")
	fmt.Printf("  provider = %s\n", cfg.LLM.Provider)
	fmt.Printf("  model    = %s\n", cfg.LLM.Model)
	fmt.Printf("  base_url = %s\n", cfg.LLM.BaseURL)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		input := promptValue(reader, label, strconv.Itoa(current))
		value, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("  Invalid number %q.\n", input)
			continue
		}
		return value
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
