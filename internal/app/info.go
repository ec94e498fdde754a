package app

import (
	"encoding/json"
	"fmt"
	"io"
)

// InfoOutput contains the information displayed by the info command.
type InfoOutput struct {
	ConfigPath    string `json:"config_path"`
	DataDir       string `json:"data_dir"`
	HistoryPath   string `json:"history_path"`
	QueriesPath   string `json:"queries_path"`
	Records       int    `json:"records"`
	Distinct      int    `json:"distinct"`
	MaxEntries    int    `json:"max_entries"`
	Selector      string `json:"selector"`
	Scanner       string `json:"scanner"`
	ModeKey       string `json:"mode_key"`
	CompactionDue bool   `json:"compaction_due"`
}

// Info reports where founder keeps its state and how full the history is.
func Info(env *Env) (*InfoOutput, error) {
	log, err := env.Store.Load()
	if err != nil {
		return nil, err
	}

	return &InfoOutput{
		ConfigPath:    env.ConfigPath,
		DataDir:       env.DataDir,
		HistoryPath:   env.HistoryPath,
		QueriesPath:   env.QueriesPath,
		Records:       log.Len(),
		Distinct:      len(log.Unique(0)),
		MaxEntries:    env.Store.MaxEntries(),
		Selector:      env.Config.Selector.Command,
		Scanner:       env.Config.Scanner.Command,
		ModeKey:       env.Config.Selector.ModeKey,
		CompactionDue: env.Store.NeedsCompaction(log),
	}, nil
}

// PrintInfo prints info in plain text format.
func PrintInfo(w io.Writer, output *InfoOutput) {
	configPath := output.ConfigPath
	if configPath == "" {
		configPath = "(defaults)"
	}
	fmt.Fprintf(w, "Config: %s\n", configPath)
	fmt.Fprintf(w, "Data dir: %s\n", output.DataDir)
	fmt.Fprintf(w, "History: %s\n", output.HistoryPath)
	fmt.Fprintf(w, "Queries: %s\n", output.QueriesPath)
	fmt.Fprintf(w, "Records: %d (%d distinct, cap %d)\n", output.Records, output.Distinct, output.MaxEntries)
	fmt.Fprintf(w, "Selector: %s\n", output.Selector)
	fmt.Fprintf(w, "Scanner: %s\n", output.Scanner)
	fmt.Fprintf(w, "Mode key: %s\n", output.ModeKey)
}

// PrintInfoJSON prints info in JSON format.
func PrintInfoJSON(w io.Writer, output *InfoOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
