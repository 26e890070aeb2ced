package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gamehubfc/managerhub/internal/domain/lineup"
	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/infrastructure/repository/filestore"
	"github.com/gamehubfc/managerhub/internal/ingest"
	"github.com/gamehubfc/managerhub/internal/interfaces/cli"
	"github.com/gamehubfc/managerhub/internal/platform/id"
	"github.com/gamehubfc/managerhub/internal/usecase"
)

func parseCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the players of an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return sonic.ConfigStd.NewEncoder(cmd.OutOrStdout()).Encode(players)
			}
			return cli.RenderPlayers(cmd.OutOrStdout(), players)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print players as JSON")
	return cmd
}

func bestElevenCmd() *cobra.Command {
	var formationName string
	cmd := &cobra.Command{
		Use:   "best-eleven FILE",
		Short: "Pick the best eleven of an export for a formation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formation, err := lineup.FormationByName(formationName)
			if err != nil {
				return fmt.Errorf("%w (known: %s)", err, strings.Join(lineup.FormationNames(), ", "))
			}
			players, err := parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			return cli.RenderBestEleven(cmd.OutOrStdout(), formation, lineup.BestEleven(players, formation))
		},
	}
	cmd.Flags().StringVar(&formationName, "formation", lineup.DefaultFormation, "Formation name")
	return cmd
}

func radarCmd() *cobra.Command {
	var (
		name       string
		avatarBase string
	)
	cmd := &cobra.Command{
		Use:   "radar FILE",
		Short: "Show the radar and attributes of one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			p, ok := findPlayer(players, name)
			if !ok {
				return fmt.Errorf("no player matches %q", name)
			}
			return cli.RenderProfile(cmd.OutOrStdout(), usecase.BuildProfile(p, avatarBase))
		},
	}
	cmd.Flags().StringVar(&name, "player", "", "Player name, exact or partial")
	cmd.Flags().StringVar(&avatarBase, "avatar-base-url", os.Getenv("MANAGERHUB_AVATAR_BASE_URL"), "Base URL for player avatars")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		dataDir string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "import DIR",
		Short: "Import every *.html export in DIR as a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				return fmt.Errorf("workers must be > 0")
			}
			inputs, err := readExports(args[0])
			if err != nil {
				return err
			}

			store, err := filestore.Open(dataDir, os.Getenv("MANAGERHUB_MASTER_KEY_PASSPHRASE"))
			if err != nil {
				return err
			}
			seasons := usecase.NewSeasonService(
				usecase.NewIngestionService(nil, nil, logger),
				filestore.NewSeasonRepository(dataDir, store),
				id.NewUUIDGenerator(),
				nil,
				usecase.SeasonServiceConfig{ImportWorkers: workers},
			)

			result, err := seasons.ImportBatch(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			table := cli.NewTable("File", "Status", "Season", "Players", "Message")
			for _, item := range result.Items {
				table.AddRow(item.Name, item.Status, item.SeasonID, fmt.Sprint(item.Players), item.Message)
			}
			if _, err := table.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}

			logger.Info("import finished",
				"data_dir", dataDir,
				"workers", result.WorkerCount,
				"created", result.CreatedCount,
				"rejected", result.RejectedCount,
				"failed", result.FailedCount,
			)
			if result.FailedCount > 0 {
				return fmt.Errorf("%d exports failed to import", result.FailedCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", envOr("MANAGERHUB_DATA_DIR", "./data"), "File store directory")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent imports")
	return cmd
}

func columnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the export headers the parser recognises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RenderVocabulary(cmd.OutOrStdout(), ingest.DefaultVocabulary())
		},
	}
}

func parseFile(cmd *cobra.Command, path string) ([]player.Player, error) {
	html, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read export %s", path)
	}

	ingestion := usecase.NewIngestionService(nil, nil, logger)
	result := ingestion.Parse(cmd.Context(), usecase.SourcePreview, html)
	if result.Err != nil {
		return nil, result.Err
	}
	logger.Debug("parsed export", "file", path, "players", len(result.Players), "columns", result.Columns)
	return result.Players, nil
}

// findPlayer prefers an exact case-insensitive name match over a partial one.
func findPlayer(players []player.Player, name string) (player.Player, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, false
	}
	for _, p := range players {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return p, true
		}
	}
	for _, p := range players {
		if p.MatchesName(name) {
			return p, true
		}
	}
	return player.Player{}, false
}

// readExports loads DIR/*.html sorted by file name. The season name is the
// file name without extension.
func readExports(dir string) ([]usecase.CreateSeasonInput, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, errors.Wrap(err, "list exports")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no *.html exports in %s", dir)
	}
	sort.Strings(paths)

	inputs := make([]usecase.CreateSeasonInput, 0, len(paths))
	for _, path := range paths {
		html, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read export %s", path)
		}
		base := filepath.Base(path)
		inputs = append(inputs, usecase.CreateSeasonInput{
			Name: strings.TrimSuffix(base, filepath.Ext(base)),
			HTML: html,
		})
	}
	return inputs, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
