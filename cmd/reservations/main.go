// Command reservations manages library book reservations from the command line.
//
// It runs against PostgreSQL when RESERVATIONS_DATABASE_URL is set (the database library is picked via DB_ADAPTER),
// and against a throw-away in-memory store otherwise, which is only useful together with the demo sub-command.
//
// Usage:
//
//	reservations [flags] <command> [arguments]
//
// Commands:
//
//	schema                                   create tables and indexes
//	seed-user <id> <name>                    insert or rename a user
//	seed-book <id> <title> <price> <qty>     insert or overwrite a book
//	create <userID> <bookID> <days> <start>  reserve a book, start as YYYY-MM-DD
//	return <reservationID> <date>            return a book on the given date
//	get <reservationID>                      show one reservation
//	list [all|user <userID>|active|overdue]  list reservations
//	history <reservationID>                  show the journal of one reservation
//	demo                                     run a create/return scenario in memory
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "reservations:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("reservations", flag.ContinueOnError)
	memory := flags.Bool("memory", false, "Use the in-memory store even if a database URL is configured")
	verbose := flags.Bool("verbose", false, "Log at debug level to stderr")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return errMissingCommand
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	obs, err := setUpObservability(ctx)
	if err != nil {
		return err
	}
	defer obs.shutdown(ctx, logger)

	commandName := flags.Arg(0)
	useMemory := *memory || commandName == commandDemo

	st, err := openStore(ctx, useMemory, logger, obs)
	if err != nil {
		return err
	}
	defer st.close()

	a, err := newApp(st, os.Stdout, logger, obs)
	if err != nil {
		return err
	}

	return a.dispatch(ctx, commandName, flags.Args()[1:])
}
