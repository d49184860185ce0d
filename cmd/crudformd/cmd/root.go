package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	crudform "github.com/goliatone/go-crudform"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crudformd",
	Short: "Run a demo admin server with generated CRUD forms",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		if dotenv := os.Getenv("CRUDFORM_DOTENV_PATH"); dotenv != "" {
			if err := gotenv.Load(dotenv); err != nil {
				log.Fatalf("Failed loading configuration file %s: %s", dotenv, err)
			}
		}

		viper.SetEnvPrefix("crudform")
		viper.AutomaticEnv()
		viper.SetDefault("port", "8080")
		viper.SetDefault("dsn", "file:crudform-demo.db")
		viper.SetDefault("base_path", "/admin")

		db, err := gorm.Open(sqlite.Open(viper.GetString("dsn")), &gorm.Config{})
		if err != nil {
			log.Fatalf("Unable to open database: %v", err)
		}

		if err := db.AutoMigrate(&User{}, &Project{}, &Task{}); err != nil {
			log.Fatalf("Unable to migrate demo schema: %v", err)
		}

		admin, err := crudform.New(db,
			[]any{&User{}, &Project{}, &Task{}},
			crudform.WithBasePath(viper.GetString("base_path")),
		)
		if err != nil {
			log.Fatalf("Unable to build admin: %v", err)
		}

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		admin.Mount(e)

		log.Infof("Admin mounted at %s", admin.BasePath())
		if err := e.Start(":" + viper.GetString("port")); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
