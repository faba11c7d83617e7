package main

import (
	"log"
	"time"

	"github.com/limbo/moodlog/internal/api"
	"github.com/limbo/moodlog/internal/repository"
	"github.com/limbo/moodlog/internal/service"
	"github.com/limbo/moodlog/pkg/cleanup"
	"github.com/limbo/moodlog/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	loc, err := time.LoadLocation(cfg.GetStringDefault("TIMEZONE", "America/Los_Angeles"))
	if err != nil {
		log.Fatal("loading timezone error: " + err.Error())
	}
	sheetsCfg := repository.SheetsCfg{
		Credentials: cfg.GetString("SHEETS_CREDENTIALS_FILE"),
		Spreadsheet: cfg.GetString("SPREADSHEET_ID"),
		Range:       cfg.GetStringDefault("SHEET_RANGE", "Sheet1!A:C"),
	}
	moodsService := service.NewMoodsService(repository.NewEntriesRepo(&sheetsCfg, loc), loc)
	serv := api.New(&api.ServicesList{
		MoodsService: moodsService,
	})
	defer cleanup.CleanUp()
	err = serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
