package main

import (
	"fmt"
	"log"
	"os"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/client"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/mirror"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
	logsvc "github.com/SotorivaXL/academic-event-manag-main/services/logger"
	"github.com/SotorivaXL/academic-event-manag-main/services/restapi"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "DASHBOARD : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	state, err := mirror.Load(conf.Dashboard.StateFile)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading local state: %v", err), err)
	}

	cli := newCommandLine(conf, logger, auth.NewFileStore(conf.Dashboard.TokenFile), state)
	err = cli.run(os.Args)

	if sErr := state.Save(conf.Dashboard.StateFile); sErr != nil {
		logger.Error("saving local state", sErr)
	}
	logger.Close()

	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
		}
		os.Exit(1)
	}
}

func newCommandLine(conf *core.Config, logger core.Logger, store auth.TokenStore, state *mirror.State) *commandLine {
	api := restapi.NewFromConfig(conf, store, logger)
	validate, translator := core.NewValidator()

	return &commandLine{
		conf:        conf,
		logger:      logger,
		session:     api.Session(),
		events:      event.NewService(api, validate, translator, logger),
		students:    student.NewService(api, validate, translator),
		enrollments: enrollment.NewService(api),
		clients:     client.NewService(api, validate, translator),
		state:       state,
		guard:       mirror.NewGuard(),
		recorder:    attendance.NewRecorder(),
		engine:      certificate.NewEngine(),
		out:         os.Stdout,
	}
}
