package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/helpers/logger"
)

var (
	// Global flags
	jsonOut bool
	quiet   bool
)

// Diganti di test (sqlite + Local locker).
var (
	openDB = func(log *zap.Logger) (*gorm.DB, error) {
		return database.ConnectDB(log)
	}
	newLocker = func() locker.Locker {
		return locker.FromAddr(configs.RedisAddr)
	}
	stdout io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "academicctl",
	Short: "Operasi akademik: migrate, kenaikan kelas, hitung nilai akhir",
	Long: `academicctl menjalankan operasi akademik yang biasanya dipicu admin
lewat API, langsung terhadap database. Lock scope yang sama dipakai, jadi
aman dijalankan berdampingan dengan server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configs.LoadEnv()
		if !quiet {
			logger.Init(configs.AppEnv)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output dalam format JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Tanpa log, hanya hasil")
}

func execute() {
	defer logger.Sync()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

func printJSON(v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(b))
	return err
}
