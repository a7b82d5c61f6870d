package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	domino "github.com/ocp-domino/domino-infer"
)

// newReplayCmd builds the replay subcommand. The file it reads holds one
// JSON value per line. The first line is the observer's 7-tile hand, as a JSON
// array of [a,b] pairs; every subsequent line is an Observation in the wire
// schema of spec.md §6. Blank lines and lines starting with "#" are
// skipped.
func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Apply a JSON-lines observation log and print the resulting marginal table",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	cfg := configFromFlags()

	scanner := bufio.NewScanner(f)
	var hand []domino.Tile
	var sess *domino.Session
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if sess == nil {
			var pairs [][2]uint8
			if err := json.Unmarshal([]byte(line), &pairs); err != nil {
				return fmt.Errorf("line %d: parse hand: %w", lineNo, err)
			}
			for _, p := range pairs {
				hand = append(hand, domino.NewTile(p[0], p[1]))
			}
			sess = domino.NewSession(hand, cfg)
			continue
		}

		var obs domino.Observation
		if err := json.Unmarshal([]byte(line), &obs); err != nil {
			return fmt.Errorf("line %d: parse observation: %w", lineNo, err)
		}
		if err := sess.Apply(obs); err != nil {
			return fmt.Errorf("line %d: apply observation: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if sess == nil {
		return fmt.Errorf("%s: empty observation log, no hand line found", args[0])
	}

	tbl, err := sess.Marginals(cmd.Context())
	if err != nil {
		return fmt.Errorf("compute marginals: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		SessionID string                 `json:"session_id"`
		Backend   string                 `json:"backend"`
		Marginals []domino.MarginalEntry `json:"marginals"`
	}{
		SessionID: sess.ID.String(),
		Backend:   tbl.Backend(),
		Marginals: tbl.Entries(),
	})
}

func configFromFlags() domino.Config {
	cfg := domino.DefaultConfig()
	if v := viper.GetInt64("tau-exact"); v != 0 {
		cfg.TauExact = v
	}
	if v := viper.GetFloat64("alpha-floor"); v != 0 {
		cfg.AlphaFloor = v
	}
	if v := viper.GetInt("target-samples"); v != 0 {
		cfg.TargetSamples = v
	}
	if v := viper.GetUint64("seed"); v != 0 {
		cfg.Seed = v
	}
	cfg.Logger = newLogger(viper.GetBool("verbose"))
	return cfg
}
