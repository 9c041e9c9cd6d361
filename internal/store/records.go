package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alfazaa/intake/internal/model"
)

// ErrRecordNotFound is returned by GetRecord when no record has the given ID.
var ErrRecordNotFound = errors.New("intake record not found")

const recordColumns = `id, driver_name, driver_id, customer_name, customer_phone,
		vehicle_plate, vehicle_color, vehicle_type, damage_notes,
		general_comments, signature, created_at, synced`

// InsertRecord writes a finalized record. The record's ID and CreatedAt must be set.
func InsertRecord(ctx context.Context, db *sql.DB, rec *model.IntakeRecord) error {
	notes := rec.DamageNotes
	if notes == nil {
		notes = []model.DamageNote{}
	}
	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encoding damage notes: %w", err)
	}

	var comments sql.NullString
	if rec.GeneralComments != "" {
		comments = sql.NullString{String: rec.GeneralComments, Valid: true}
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO intake_records (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DriverName, rec.DriverID, rec.CustomerName, rec.CustomerPhone,
		rec.VehiclePlate, rec.VehicleColor, string(rec.VehicleType), string(notesJSON),
		comments, rec.Signature, model.FormatTime(rec.CreatedAt), rec.Synced,
	)
	if err != nil {
		return fmt.Errorf("inserting intake record: %w", err)
	}
	return nil
}

// ListRecords returns every record, most recent first.
func ListRecords(ctx context.Context, db *sql.DB) ([]model.IntakeRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM intake_records ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing intake records: %w", err)
	}
	defer rows.Close()

	records := []model.IntakeRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing intake records: %w", err)
	}
	return records, nil
}

// GetRecord returns the record with the given ID.
func GetRecord(ctx context.Context, db *sql.DB, id string) (*model.IntakeRecord, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM intake_records WHERE id = ?`, id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.IntakeRecord, error) {
	var (
		rec        model.IntakeRecord
		vehicleTyp string
		notes      sql.NullString
		comments   sql.NullString
		signature  sql.NullString
		createdAt  string
		synced     sql.NullBool
	)
	err := s.Scan(&rec.ID, &rec.DriverName, &rec.DriverID, &rec.CustomerName, &rec.CustomerPhone,
		&rec.VehiclePlate, &rec.VehicleColor, &vehicleTyp, &notes,
		&comments, &signature, &createdAt, &synced)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning intake record: %w", err)
	}

	rec.VehicleType = model.VehicleType(vehicleTyp)
	rec.GeneralComments = comments.String
	if signature.Valid {
		sig := signature.String
		rec.Signature = &sig
	}
	rec.Synced = synced.Bool

	rec.DamageNotes = []model.DamageNote{}
	if notes.Valid && notes.String != "" {
		if err := json.Unmarshal([]byte(notes.String), &rec.DamageNotes); err != nil {
			return nil, fmt.Errorf("decoding damage notes of %s: %w", rec.ID, err)
		}
	}

	rec.CreatedAt, err = model.ParseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("decoding created_at of %s: %w", rec.ID, err)
	}
	return &rec, nil
}
