package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/jafarov01/cockpit/internal/models"
)

func (s *Store) AddDocument(d models.Document) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (id, name, status, expiry, is_critical)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Name, string(d.Status), d.Expiry, boolToInt(d.IsCritical))
	return err
}

func (s *Store) GetDocument(id string) (models.Document, error) {
	row := s.db.QueryRow("SELECT id, name, status, expiry, is_critical FROM documents WHERE id = ?", id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return models.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return d, err
}

func (s *Store) GetAllDocuments() ([]models.Document, error) {
	rows, err := s.db.Query("SELECT id, name, status, expiry, is_critical FROM documents ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) UpdateDocument(d models.Document) error {
	res, err := s.db.Exec(`
		UPDATE documents SET name = ?, status = ?, expiry = ?, is_critical = ? WHERE id = ?`,
		d.Name, string(d.Status), d.Expiry, boolToInt(d.IsCritical), d.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "document", d.ID)
}

func (s *Store) DeleteDocument(id string) error {
	res, err := s.db.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "document", id)
}

func scanDocument(row rowScanner) (models.Document, error) {
	var d models.Document
	var status string
	var expiry sql.NullString
	var critical int

	if err := row.Scan(&d.ID, &d.Name, &status, &expiry, &critical); err != nil {
		return models.Document{}, err
	}
	d.Status = models.DocumentStatus(status)
	d.Expiry = expiry.String
	d.IsCritical = critical != 0
	return d, nil
}
