package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/jafarov01/cockpit/internal/models"
)

func (s *Store) AddExam(e models.Exam) error {
	_, err := s.db.Exec(`
		INSERT INTO exams (id, name, cfu, status, exam_date, is_scholarship_critical, strategy_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.CFU, string(e.Status), e.ExamDate, boolToInt(e.IsScholarshipCritical), e.StrategyNotes)
	return err
}

func (s *Store) GetExam(id string) (models.Exam, error) {
	row := s.db.QueryRow(`
		SELECT id, name, cfu, status, exam_date, is_scholarship_critical, strategy_notes
		FROM exams WHERE id = ?`, id)
	e, err := scanExam(row)
	if err == sql.ErrNoRows {
		return models.Exam{}, fmt.Errorf("exam not found: %s", id)
	}
	return e, err
}

func (s *Store) GetAllExams() ([]models.Exam, error) {
	rows, err := s.db.Query(`
		SELECT id, name, cfu, status, exam_date, is_scholarship_critical, strategy_notes
		FROM exams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateExam(e models.Exam) error {
	res, err := s.db.Exec(`
		UPDATE exams
		SET name = ?, cfu = ?, status = ?, exam_date = ?, is_scholarship_critical = ?, strategy_notes = ?
		WHERE id = ?`,
		e.Name, e.CFU, string(e.Status), e.ExamDate, boolToInt(e.IsScholarshipCritical), e.StrategyNotes, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "exam", e.ID)
}

func (s *Store) UpdateExamStatus(id string, status models.ExamStatus) error {
	res, err := s.db.Exec("UPDATE exams SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res, "exam", id)
}

func (s *Store) DeleteExam(id string) error {
	res, err := s.db.Exec("DELETE FROM exams WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "exam", id)
}

func scanExam(row rowScanner) (models.Exam, error) {
	var e models.Exam
	var status string
	var examDate, notes sql.NullString
	var critical int

	if err := row.Scan(&e.ID, &e.Name, &e.CFU, &status, &examDate, &critical, &notes); err != nil {
		return models.Exam{}, err
	}
	e.Status = models.ExamStatus(status)
	e.ExamDate = examDate.String
	e.IsScholarshipCritical = critical != 0
	e.StrategyNotes = notes.String
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
