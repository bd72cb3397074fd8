//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package fakefodb runs an in-process, in-memory MySQL-compatible server for
// development and tests. Nothing it stores survives the process.
package fakefodb

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	gms "github.com/dolthub/go-mysql-server"
	gmsmemory "github.com/dolthub/go-mysql-server/memory"
	gmsserver "github.com/dolthub/go-mysql-server/server"
	gmssql "github.com/dolthub/go-mysql-server/sql"
	"log/slog"
	"net"
)

//go:embed seed.sql
var seedData string

// Start launches the fake server on host:port (port 0 picks a free one)
// and returns the port it's actually listening on.
func Start(
	ctx context.Context, dbName, host string, port int32, username, password string,
) (actualPort int32, err error) {
	db := gmsmemory.NewDatabase(dbName)
	db.BaseDatabase.EnablePrimaryKeyIndexes()
	prov := gmsmemory.NewDBProvider(db)
	engine := gms.NewDefault(prov)

	addSuperUser(engine, username, password)

	session := gmsmemory.NewSession(gmssql.NewBaseSession(), prov)
	gmsCtx := gmssql.NewContext(ctx, gmssql.WithSession(session))
	gmsCtx.SetCurrentDatabase(dbName)

	err = gmssql.SystemVariables.AssignValues(map[string]any{
		"secure_file_priv": "NULL",
	})
	if err != nil {
		return 0, fmt.Errorf("[AssignValues]: %w", err)
	}

	config := gmsserver.Config{
		Protocol: "tcp",
		Address:  fmt.Sprintf("%v:%v", host, port),
	}
	s, err := gmsserver.NewServer(config, engine, gmssql.NewContext, gmsmemory.NewSessionBuilder(prov), nil)
	if err != nil {
		return 0, fmt.Errorf("[NewServer]: %w", err)
	}
	go func() {
		if err := s.Start(); err != nil {
			slog.Error("Fake DB server stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()
	addr, ok := s.Listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, errors.New("fake DB is not listening on TCP")
	}
	return int32(addr.Port), nil
}

// SeedData is a SQL script of demo reservations and stays, to be run after
// the schema is in place.
func SeedData() string {
	return seedData
}

func addSuperUser(engine *gms.Engine, username string, password string) {
	mysqlDb := engine.Analyzer.Catalog.MySQLDb
	ed := mysqlDb.Editor()
	defer ed.Close()
	mysqlDb.AddEphemeralSuperUser(ed, username, "localhost", password)
}
