package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statz-dev/statz/pkg/statz/config"
	"github.com/statz-dev/statz/pkg/statz/history"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recorded snapshots",
	Long: `View snapshots recorded by previous specs and usage runs. Records
are kept in a local database and can be re-rendered or pruned.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-render a recorded snapshot",
	Long:  `Display a recorded snapshot by its ID, using the configured format.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old snapshot records",
	Long:  `Remove the oldest records of each kind beyond the configured keep count.`,
	RunE:  runHistoryPrune,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of records to show")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

// historyPath returns the configured history database location.
func historyPath() string {
	if path := viper.GetString("history.path"); path != "" {
		return path
	}
	return config.DefaultHistoryPath()
}

// openHistory opens the history store, creating its directory first.
func openHistory() (*history.Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, err
	}
	return history.Open(historyPath())
}

// recordHistory stores a collected snapshot, used by the specs and
// usage commands.
func recordHistory(kind string, data snapshot.Node) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Put(kind, data); err != nil {
		return err
	}

	keep := viper.GetInt("history.keep")
	if keep > 0 {
		if _, err := store.Prune(kind, keep); err != nil {
			return err
		}
	}
	return nil
}

// runHistory lists recent records of every kind.
func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	var records []*history.Record
	for _, kind := range []string{"specs", "usage"} {
		found, err := store.List(kind, historyLimit)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}
		records = append(records, found...)
	}

	if len(records) == 0 {
		fmt.Println("No snapshot records found.")
		fmt.Println("Run 'statz specs' or 'statz usage' to record one.")
		return nil
	}

	fmt.Printf("\n%-36s  %-6s  %s\n", "ID", "KIND", "TAKEN")
	fmt.Println(strings.Repeat("-", 70))
	for _, record := range records {
		fmt.Printf("%-36s  %-6s  %s\n",
			record.ID, record.Kind, record.TakenAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Println("Use 'statz history show <id>' to re-render a record.")

	return nil
}

// runHistoryShow re-renders one record.
func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", args[0], err)
	}

	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	record, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("loading record: %w", err)
	}
	data, err := record.Snapshot()
	if err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}

	kind := record.Kind
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	title := fmt.Sprintf("%s (%s)", kind, record.TakenAt.Local().Format("2006-01-02 15:04:05"))
	return renderDoc(title, data)
}

// runHistoryPrune trims each kind to the configured keep count.
func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	keep := viper.GetInt("history.keep")
	if keep <= 0 {
		keep = config.DefaultHistoryKeep
	}

	total := 0
	for _, kind := range []string{"specs", "usage"} {
		pruned, err := store.Prune(kind, keep)
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		total += pruned
	}

	fmt.Printf("Removed %d record(s), keeping the newest %d per kind.\n", total, keep)
	return nil
}
