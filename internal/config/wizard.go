package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// DefaultConfigPath is where the wizard writes its result.
const DefaultConfigPath = ".marsdash.yml"

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to marsdash! Let's configure the dashboard.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port to listen on",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Rovers.
	roversPrompt := promptui.Prompt{
		Label:   "Rovers to offer (comma-separated)",
		Default: strings.Join(cfg.Dashboard.Rovers, ","),
	}
	roversStr, err := roversPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("rovers: %w", err)
	}
	if rovers := splitAndTrim(roversStr); len(rovers) > 0 {
		cfg.Dashboard.Rovers = rovers
	}

	// 3. Default sol.
	solPrompt := promptui.Prompt{
		Label:    "Default mission sol",
		Default:  strconv.Itoa(cfg.Dashboard.DefaultSol),
		Validate: validateSol,
	}
	solStr, err := solPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default sol: %w", err)
	}
	cfg.Dashboard.DefaultSol, _ = strconv.Atoi(solStr)

	// 4. Journal.
	journalPrompt := promptui.Select{
		Label: "Keep a journal of upstream fetches",
		Items: []string{"yes", "no"},
	}
	idx, _, err := journalPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("journal selection: %w", err)
	}
	if idx == 1 {
		cfg.Journal.Path = ""
	}

	if APIKey() == "" {
		fmt.Printf("\nNote: Set %s in your environment (or .env) before running marsdash server.\n", APIKeyEnvVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

func validateSol(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("sol must be a non-negative number")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
