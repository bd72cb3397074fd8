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

// Package testctr starts throwaway database containers for tests that need
// a real MariaDB rather than the in-process fake.
package testctr

import (
	"context"
	"errors"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"log/slog"
)

const (
	MariaDBVersion     = "10.11.10"
	MariaDBDockerImage = "mariadb:" + MariaDBVersion
)

// MariaDBContainer starts a MariaDB container with an empty database and
// returns the connection settings for it. The cleanup func terminates the
// container and is safe to call even when err is non-nil.
func MariaDBContainer(ctx context.Context, database, username, password string) (
	dbCfg conf.DBStoreMaria,
	cleanup func(),
	err error,
) {
	ctr, err := testcontainers.GenericContainer(
		ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        MariaDBDockerImage,
				ExposedPorts: []string{"3306/tcp"},
				WaitingFor:   wait.ForLog("port: 3306  mariadb.org binary distribution"),
				Env: map[string]string{
					"MARIADB_RANDOM_ROOT_PASSWORD": "true",
					"MARIADB_DATABASE":             database,
					"MARIADB_USER":                 username,
					"MARIADB_PASSWORD":             password,
				},
			},
			Started: true,
		},
	)
	cleanup = func() {
		if ctr == nil {
			return
		}
		if err := ctr.Terminate(ctx); err != nil {
			slog.Error("Failed to terminate container", "error", err)
		}
	}
	if err != nil {
		return dbCfg, cleanup, err
	}
	host, hostErr := ctr.Host(ctx)
	natPort, portErr := ctr.MappedPort(ctx, "3306/tcp")
	if err = errors.Join(hostErr, portErr); err != nil {
		return dbCfg, cleanup, err
	}
	return conf.DBStoreMaria{
		HostName:     host,
		HostPort:     int32(natPort.Int()),
		Database:     database,
		Username:     username,
		Password:     password,
		MaxOpenConns: 10,
	}, cleanup, nil
}
