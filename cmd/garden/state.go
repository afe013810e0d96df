package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/snapshot"
)

var (
	flagStateURL  string
	flagStateJSON bool
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the state of a running match",
	Long: `Fetch the snapshot of a match hosted by 'garden serve' and print it as
the text table, or as JSON with --json.

Examples:
  garden state
  garden state --url http://garden.example:3000
  garden state --json`,
	Args: cobra.NoArgs,
	Run:  runState,
}

func init() {
	stateCmd.Flags().StringVar(&flagStateURL, "url", "http://localhost:3000", "Base URL of the garden server")
	stateCmd.Flags().BoolVar(&flagStateJSON, "json", false, "Print the raw snapshot JSON")
}

func runState(_ *cobra.Command, _ []string) {
	codec, err := snapshot.NewCodec(false)
	if err != nil {
		exitf("%v", err)
	}
	defer codec.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	state, err := fetchState(ctx, http.DefaultClient, flagStateURL, codec)
	if err != nil {
		exitf("%v", err)
	}

	if flagStateJSON {
		data, err := codec.EncodeState(state, false)
		if err != nil {
			exitf("%v", err)
		}
		os.Stdout.Write(data)
		fmt.Println()
		return
	}

	g, err := garden.Restore(state)
	if err != nil {
		exitf("server sent an invalid snapshot: %v", err)
	}
	fmt.Println(garden.Render(g))
	if g.IsGameOver() {
		winner, _ := g.Winner()
		fmt.Printf("\nGame over. Winner: %s\n", winner)
	}
}

// fetchState downloads and decodes the snapshot from a garden server.
func fetchState(ctx context.Context, client *http.Client, baseURL string, codec *snapshot.Codec) (*garden.Snapshot, error) {
	url := strings.TrimRight(baseURL, "/") + "/state"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Encoding", snapshot.ContentEncoding)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot reach %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s: %s", url, resp.Status, strings.TrimSpace(string(data)))
	}
	return codec.DecodeState(data)
}
