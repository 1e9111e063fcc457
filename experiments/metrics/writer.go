package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID      int
	Kind    string // "search" or "random"
	Depth   int    // Search agents only
	Pruning bool   // Alpha-beta when set, full-width minimax otherwise
}

type GameRecord struct {
	ID        int
	Game      string
	Maximizer int // AgentConfig.ID
	Minimizer int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// PruningRecord compares alpha-beta against full-width minimax on the same
// position and depth.
type PruningRecord struct {
	Game            string
	Depth           int
	Score           float64
	AlphaBeta       SearchMetric
	Minimax         SearchMetric
	NodesSavedRatio float64
}

type Writer struct {
	baseDir string
	create  func(path string) (io.WriteCloser, error)
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// NewWriter creates root/name/<timestamp> to hold the experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		create:  createFile,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Depth),
			strconv.FormatBool(config.Pruning),
		})
	}
	return w.write("agent_configs.csv", []string{"id", "kind", "depth", "pruning"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Game,
			strconv.Itoa(record.Maximizer),
			strconv.Itoa(record.Minimizer),
			strconv.FormatBool(record.MaximizingFirst),
			record.Outcome,
			strconv.FormatFloat(record.FinalScore, 'f', -1, 64),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "game", "maximizer", "minimizer", "maximizing_first", "outcome", "final_score",
		"total_moves", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.FormatBool(record.Maximizing),
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Leaves, 10),
			strconv.FormatInt(record.Cutoffs, 10),
		})
	}
	header := []string{"game", "step", "maximizing", "depth", "duration", "nodes", "leaves", "cutoffs"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WritePruningRecords(records []PruningRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Depth),
			strconv.FormatFloat(record.Score, 'f', -1, 64),
			strconv.FormatInt(record.AlphaBeta.Nodes, 10),
			strconv.FormatInt(record.Minimax.Nodes, 10),
			strconv.FormatInt(record.AlphaBeta.Cutoffs, 10),
			record.AlphaBeta.Duration.String(),
			record.Minimax.Duration.String(),
			strconv.FormatFloat(record.NodesSavedRatio, 'f', 4, 64),
		})
	}
	header := []string{"game", "depth", "score", "alphabeta_nodes", "minimax_nodes", "cutoffs",
		"alphabeta_duration", "minimax_duration", "nodes_saved_ratio"}
	return w.write("pruning_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, name)
	f, err := w.create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, closeErr)
		}
	}()

	writer := csv.NewWriter(f)
	if err = writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err = writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
