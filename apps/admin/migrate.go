package main

import (
	"io/fs"

	"github.com/pressly/goose/v3"

	appfs "github.com/lernfeld/kursadmin/fs"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	sub, err := fs.Sub(appfs.FS, "migrations")
	if err != nil {
		return err
	}
	goose.SetBaseFS(sub)

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, ".", arguments...)
}
