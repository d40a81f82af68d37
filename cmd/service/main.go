// File: cmd/service/main.go
// @title        Admin Form API
// @version      1.0
// @description  管理員建立使用者表單的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "admin-form/docs" // 引入 swag 產出的 docs
)

var (
	osArgs   = func() []string { return os.Args[1:] }
	exitFunc = os.Exit
)

// newRootCmd 建立 CLI；未指定子命令時等同 serve
func newRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "admin-form",
		Short:         "Admin user creation form service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "設定檔路徑 (yaml/json/toml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath)
		},
	}

	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Args:    cobra.NoArgs,
		Aliases: []string{"m"},
		Short:   "Database migration commands",
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrateUp(cfgPath)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrateDown(cfgPath)
			},
		},
	)

	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(osArgs())
	if err := cmd.Execute(); err != nil {
		logrus.Error(err)
		exitFunc(1)
	}
}
