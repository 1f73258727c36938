package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/reblock/pkg/config"
)

func ExampleLoad_yaml() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "reblock-config")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configYAML := `
matching:
  normalization: collapse
files:
  include: ["**/*.py"]
  backup: true
`
	configPath := filepath.Join(dir, ".reblock.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)
	fmt.Printf("Include: %v\n", cfg.Files.Include)
	fmt.Printf("Backup: %v\n", cfg.Files.Backup)

	// Output:
	// search:《…》 replace:《…》 normalization=collapse output=json
	// Include: [**/*.py]
	// Backup: true
}

func ExampleLoad_hcl() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "reblock-config")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configHCL := `
syntax {
  open_marker  = "<<"
  close_marker = ">>"
}

output = "text"
`
	configPath := filepath.Join(dir, ".reblock.hcl")
	if err := os.WriteFile(configPath, []byte(configHCL), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)

	// Output:
	// search:<<…>> replace:<<…>> normalization=strip output=text
}
