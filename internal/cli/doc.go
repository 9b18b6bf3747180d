package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jafarov01/cockpit/internal/models"
)

type DocCmd struct {
	Add       DocAddCmd       `cmd:"" help:"Track a bureaucratic document."`
	List      DocListCmd      `cmd:"" help:"List documents."`
	SetStatus DocSetStatusCmd `cmd:"" name:"set-status" help:"Change a document's status."`
}

type DocAddCmd struct {
	Name     string `arg:"" help:"Document name."`
	Status   string `help:"Document status." default:"valid"`
	Expiry   string `help:"Expiry date (YYYY-MM-DD)."`
	Critical bool   `help:"Expiry of this document turns the global status red."`
}

func (c *DocAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	status := models.DocumentStatus(c.Status)
	switch status {
	case models.DocumentValid, models.DocumentExpiring, models.DocumentExpired, models.DocumentUnknown:
	default:
		return fmt.Errorf("invalid document status: %s", c.Status)
	}

	doc := models.Document{
		ID:         uuid.New().String(),
		Name:       c.Name,
		Status:     status,
		Expiry:     c.Expiry,
		IsCritical: c.Critical,
	}
	if err := ctx.Store.AddDocument(doc); err != nil {
		return err
	}
	fmt.Printf("Added document: %s (%s)\n", doc.Name, doc.ID)
	return nil
}

type DocListCmd struct{}

func (c *DocListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	docs, err := ctx.Store.GetAllDocuments()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No documents.")
		return nil
	}
	for _, d := range docs {
		critical := ""
		if d.IsCritical {
			critical = " [critical]"
		}
		expiry := d.Expiry
		if expiry == "" {
			expiry = "-"
		}
		fmt.Printf("%-36s  %-9s  expires %-10s  %s%s\n", d.ID, d.Status, expiry, d.Name, critical)
	}
	return nil
}

type DocSetStatusCmd struct {
	Doc    string `arg:"" help:"Document id."`
	Status string `arg:"" help:"New status: valid, expiring, expired, unknown."`
}

func (c *DocSetStatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	doc, err := ctx.Store.GetDocument(c.Doc)
	if err != nil {
		return err
	}

	status := models.DocumentStatus(c.Status)
	switch status {
	case models.DocumentValid, models.DocumentExpiring, models.DocumentExpired, models.DocumentUnknown:
	default:
		return fmt.Errorf("invalid document status: %s", c.Status)
	}

	doc.Status = status
	if err := ctx.Store.UpdateDocument(doc); err != nil {
		return err
	}
	fmt.Printf("Document %s is now %s\n", doc.Name, status)
	return nil
}
