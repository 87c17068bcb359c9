package pixdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
)

// pixelRecord is the serialisable form of one stored hit. Pixel order in
// the JSON array preserves the cluster's absorption order.
type pixelRecord struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Count int `json:"c"`
}

func encodePixels(g *pix.PixelGrid) (string, error) {
	pixels := g.HitPixels()
	counts := g.Counts()
	records := make([]pixelRecord, len(pixels))
	for i, p := range pixels {
		records[i] = pixelRecord{X: p.X, Y: p.Y, Count: counts[i]}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode pixels: %w", err)
	}
	return string(data), nil
}

// SaveFrame stores frame and all of its clusters, returning the new
// frame row ID. Clustering is triggered if it has not run yet.
func (db *DB) SaveFrame(frame *pix.Frame, sourcePath string) (int64, error) {
	clusters := frame.Clusters()

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save frame: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO frames (source_path, width, height, hit_count, created_unix_nanos)
		VALUES (?, ?, ?, ?, ?)
	`, sourcePath, frame.Width, frame.Height, frame.NumHits(), time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("insert frame: %w", err)
	}
	frameID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get frame insert ID: %w", err)
	}

	for _, cluster := range clusters {
		pixelsJSON, err := encodePixels(cluster.Grid())
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(`
			INSERT INTO clusters (cluster_id, frame_id, hit_count, pixels_json, manual_class, algorithm_class)
			VALUES (?, ?, ?, ?, ?, ?)
		`, cluster.ID, frameID, cluster.NumHits(), pixelsJSON, cluster.ManualClass, cluster.AlgorithmClass); err != nil {
			return 0, fmt.Errorf("insert cluster %s: %w", cluster.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save frame: %w", err)
	}
	return frameID, nil
}

// SaveLabels upserts the manual class of each labelled cluster of
// frame. Unclassified clusters are left untouched so a partial labelling
// pass never erases earlier work.
func (db *DB) SaveLabels(frame *pix.Frame) error {
	for _, cluster := range frame.Clusters() {
		if cluster.ManualClass == pix.Unclassified {
			continue
		}
		if _, err := db.Exec(`
			UPDATE clusters SET manual_class = ? WHERE cluster_id = ?
		`, cluster.ManualClass, cluster.ID); err != nil {
			return fmt.Errorf("save label for cluster %s: %w", cluster.ID, err)
		}
	}
	return nil
}

// LoadLabels returns the identity → manual class map for every labelled
// cluster of the stored frame, in the shape pix.LoadTrainingData
// consumes.
func (db *DB) LoadLabels(frameID int64) (map[string]string, error) {
	rows, err := db.Query(`
		SELECT cluster_id, manual_class FROM clusters
		WHERE frame_id = ? AND manual_class != ?
	`, frameID, pix.Unclassified)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	defer rows.Close()

	labels := make(map[string]string)
	for rows.Next() {
		var id, class string
		if err := rows.Scan(&id, &class); err != nil {
			return nil, fmt.Errorf("scan label row: %w", err)
		}
		labels[id] = class
	}
	return labels, rows.Err()
}

// FrameRecord summarises one stored frame.
type FrameRecord struct {
	FrameID          int64
	SourcePath       string
	Width, Height    int
	HitCount         int
	CreatedUnixNanos int64
}

// GetFrame returns the stored metadata for frameID.
func (db *DB) GetFrame(frameID int64) (*FrameRecord, error) {
	var rec FrameRecord
	err := db.QueryRow(`
		SELECT frame_id, source_path, width, height, hit_count, created_unix_nanos
		FROM frames WHERE frame_id = ?
	`, frameID).Scan(&rec.FrameID, &rec.SourcePath, &rec.Width, &rec.Height, &rec.HitCount, &rec.CreatedUnixNanos)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("frame %d not found", frameID)
	}
	if err != nil {
		return nil, fmt.Errorf("get frame: %w", err)
	}
	return &rec, nil
}

// ListFrames returns stored frames, newest first.
func (db *DB) ListFrames(limit int) ([]*FrameRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT frame_id, source_path, width, height, hit_count, created_unix_nanos
		FROM frames ORDER BY created_unix_nanos DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	var records []*FrameRecord
	for rows.Next() {
		rec := &FrameRecord{}
		if err := rows.Scan(&rec.FrameID, &rec.SourcePath, &rec.Width, &rec.Height, &rec.HitCount, &rec.CreatedUnixNanos); err != nil {
			return nil, fmt.Errorf("scan frame row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
