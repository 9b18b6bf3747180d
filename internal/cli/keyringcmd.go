package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/jafarov01/cockpit/internal/keyring"
	"github.com/jafarov01/cockpit/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
}

type KeyringSetCmd struct{}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}

	var connStr string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("PostgreSQL connection string").
			Description("Credentials must not be embedded; use PGPASSWORD or .pgpass.").
			EchoMode(huh.EchoModePassword).
			Value(&connStr),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if err := postgres.ValidateConnStr(connStr); err != nil {
		return err
	}
	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in keyring.")
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if err == keyring.ErrNotFound {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from keyring.")
	return nil
}
