package main

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/generation"
	"alcyxob/swimcoach/internal/planner"
	"alcyxob/swimcoach/internal/repository/memory"
	"alcyxob/swimcoach/internal/service"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd(configPath *string) *cobra.Command {
	var params struct {
		level    string
		goals    []string
		days     int
		duration int
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one training plan and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			generator, err := generation.NewClientFromConfig(cmd.Context(), cfg.Generation, log)
			if err != nil {
				return err
			}
			trainingService := service.NewTrainingService(
				memory.NewTrainingPlanRepository(),
				memory.NewScheduleRepository(),
				generator, nil, 0, log,
			)

			plan, err := trainingService.GeneratePlan(cmd.Context(), planner.PlanParams{
				Level:       domain.Level(params.level),
				Goals:       params.goals,
				DaysPerWeek: params.days,
				Duration:    params.duration,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&params.level, "level", string(domain.LevelBeginner), "swimmer level: Beginner, Intermediate or Advanced")
	cmd.Flags().StringSliceVar(&params.goals, "goals", nil, "training goals, comma separated")
	cmd.Flags().IntVar(&params.days, "days", 3, "training days per week")
	cmd.Flags().IntVar(&params.duration, "duration", 45, "session duration in minutes")
	_ = cmd.MarkFlagRequired("goals")
	return cmd
}
