package commands

import (
	"fmt"

	"wikiflow/internal/seed"
	serviceAudit "wikiflow/internal/service/audit"
	serviceAuth "wikiflow/internal/service/auth"
	serviceWiki "wikiflow/internal/service/wiki"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture data through the wiki services",
	Long: `Load users, spaces, tags and articles from a YAML fixture file.

Articles go through the normal services, so they get slugs, versions, review
history and audit events exactly as if created over the API. Articles marked
publish: true are submitted and approved.

Example fixture:

  users:
    - username: alice
      role: EDITOR
  spaces:
    - key: eng
      name: Engineering
  tags: [howto]
  articles:
    - space: eng
      author: alice
      title: Getting Started
      content: Hello
      tags: [howto]
      publish: true
    - space: eng
      file: articles/runbook.md`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Fixture file (YAML)")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixtures, err := seed.LoadFixtures(seedFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := openEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	repos := env.backend.Repos
	recorder := serviceAudit.NewRecorder(repos.Events,
		serviceAuth.NewUserActorResolver(repos.Users, env.logger),
		serviceAudit.RecorderConfig{QueueSize: env.cfg.AuditQueueSize, Workers: env.cfg.AuditWorkers},
		env.logger,
	)
	recorder.Start()

	services := serviceWiki.SetupServices(repos, serviceAuth.NewRoleAuthorizer(), recorder, env.logger)
	res, applyErr := seed.NewSeeder(services, repos.Users, env.logger).Apply(ctx, fixtures)

	// Flush audit events for whatever was created, even on failure
	if err := recorder.Close(ctx); err != nil {
		env.logger.Warn("audit drain incomplete", "error", err)
	}
	if applyErr != nil {
		return applyErr
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"seeded %d users, %d spaces, %d tags, %d articles (%d versions, %d published)\n",
		res.Users, res.Spaces, res.Tags, res.Articles, res.Versions, res.Published,
	)
	return nil
}
