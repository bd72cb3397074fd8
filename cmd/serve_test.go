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

package cmd

import (
	"context"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMustInitConfig(t *testing.T) {
	t.Setenv("FD_HOSTNAME", "host")
	t.Setenv("FD_PORT", "1234")
	t.Setenv("FD_DEPLOYMENT", "STAGING")
	t.Setenv("FD_ACCESS_TOKEN_LIFETIME", "100")
	t.Setenv("FD_CACHE_CONTROL_SHORT", "3m")
	t.Setenv("FD_LOG_LEVEL", "WARN")
	t.Setenv("FD_ACTION_LOG_ENABLED", "false")
	t.Setenv("FD_MAX_REQUEST_BYTES", "2048")
	t.Setenv("FD_JWT_SECRET", `"shhh"`)
	t.Setenv("FD_DB_STORE_TYPE", "fake")
	t.Setenv("FD_DB_HOST_NAME", "db")
	t.Setenv("FD_DB_HOST_PORT", "555")
	t.Setenv("FD_DB_DATABASE", "fo")
	t.Setenv("FD_DB_USER_NAME", "me")
	t.Setenv("FD_DB_PASSWORD", "boo")
	t.Setenv("FD_ROOM_BLOCKS", "101-110, 201-205")
	t.Setenv("FD_TWIN_ROOMS", "102, 204,")
	t.Setenv("FD_ROOMS_CACHE_TTL", "9s")
	t.Setenv("FD_TIME_ZONE", "UTC")
	t.Setenv("FD_STAFF", "nightaudit:$2a$10$abc, manager:$2a$10$def")
	t.Setenv("FD_IMPORT_SOURCE", "S3")
	t.Setenv("FD_IMPORT_FILE_PATTERN", "*.csv")
	t.Setenv("FD_IMPORT_LOCAL_DIR", "/srv/exports")
	t.Setenv("AWS_ACCESS_KEY_ID", "my name")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "my key")
	t.Setenv("AWS_REGION", "mars")
	t.Setenv("FD_IMPORT_S3_BUCKET", "big-bucket")
	t.Setenv("FD_IMPORT_S3_KEY_PREFIX", "exports/")

	cfg := mustInitConfig(".env")

	assert.Equal(t, "host", cfg.Core.Host)
	assert.Equal(t, int32(1234), cfg.Core.Port)
	assert.Equal(t, conf.DeploymentTypeStaging, cfg.Core.Deployment)
	assert.Equal(t, 100*time.Second, cfg.Core.AccessTokenLifetime)
	assert.Equal(t, 3*time.Minute, cfg.Core.CacheControlShort)
	assert.Equal(t, "WARN", cfg.Core.LogLevel)
	assert.False(t, cfg.Core.ActionLogEnabled)
	assert.Equal(t, int64(2048), cfg.Core.MaxRequestBytes)
	assert.Equal(t, "shhh", cfg.Core.JWTSecret)
	assert.Equal(t, conf.DBStoreTypeFake, cfg.Store.Type)
	assert.Equal(t, "db", cfg.Store.MariaDB.HostName)
	assert.Equal(t, int32(555), cfg.Store.MariaDB.HostPort)
	assert.Equal(t, "fo", cfg.Store.MariaDB.Database)
	assert.Equal(t, "me", cfg.Store.MariaDB.Username)
	assert.Equal(t, "boo", cfg.Store.MariaDB.Password)
	assert.Equal(t, []conf.RoomBlock{{First: 101, Last: 110}, {First: 201, Last: 205}}, cfg.Hotel.RoomBlocks)
	assert.Equal(t, []string{"102", "204"}, cfg.Hotel.TwinRooms)
	assert.Equal(t, 9*time.Second, cfg.Hotel.RoomsCacheTTL)
	assert.Equal(t, "UTC", cfg.Hotel.TimeZone)
	assert.Equal(t, []conf.StaffUser{
		{Handle: "nightaudit", PasswordHash: "$2a$10$abc"},
		{Handle: "manager", PasswordHash: "$2a$10$def"},
	}, cfg.Staff.Users)
	assert.Equal(t, conf.ImportSourceS3, cfg.Import.Source)
	assert.Equal(t, "*.csv", cfg.Import.FilePattern)
	assert.Equal(t, "/srv/exports", cfg.Import.LocalDir)
	assert.Equal(t, "my name", cfg.Import.S3.AWSAccessKeyID)
	assert.Equal(t, "my key", cfg.Import.S3.AWSSecretAccessKey)
	assert.Equal(t, "mars", cfg.Import.S3.AWSRegion)
	assert.Equal(t, "big-bucket", cfg.Import.S3.Bucket)
	assert.Equal(t, "exports/", cfg.Import.S3.KeyPrefix)
	require.NoError(t, cfg.Validate())
}

func TestMustInitConfigBadValues(t *testing.T) {
	t.Setenv("FD_ROOM_BLOCKS", "10x-110")
	assert.Panics(t, func() { mustInitConfig(".env") })
}

func TestMustInitConfigBadStaff(t *testing.T) {
	t.Setenv("FD_STAFF", "nightaudit")
	assert.Panics(t, func() { mustInitConfig(".env") })
}

func TestMustInitConfigMissingEnvFile(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { mustInitConfig(filepath.Join(t.TempDir(), "missing.env")) })
}

func TestRunServer(t *testing.T) {
	t.Parallel()
	fdCfg := conf.DefaultFrontDesk()

	// this will have the server pick a random port
	fdCfg.Core.Port = 0
	fdCfg.Store.Type = conf.DBStoreTypeNoOp

	// Start the server, then cancel it.
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	exitCode := runServerInternal(ctx, fdCfg, true, make(chan string, 1))
	assert.Equal(t, 69, exitCode)
}

func TestRunImportNeedsSource(t *testing.T) {
	t.Parallel()
	fdCfg := conf.DefaultFrontDesk()
	fdCfg.Store.Type = conf.DBStoreTypeNoOp
	err := runImportInternal(t.Context(), fdCfg)
	require.ErrorContains(t, err, "FD_IMPORT_SOURCE")
}

func TestRunImportAndSyncRoomsOnFakeDB(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	dir := t.TempDir()
	export := "Arrival Date,Depart,Room,Reservation No.,Guest or Group's name,Main client,Meal Plan,Main Rem.,AD,Chanl\n" +
		"2027-12-01,2027-12-03,305,CMD-1,Marta Lind,Direct,BB,,2,WEB\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Arrivals December.csv"), []byte(export), 0o600))

	fdCfg := conf.DefaultFrontDesk()
	fdCfg.Store.Type = conf.DBStoreTypeFake
	fdCfg.Import.Source = conf.ImportSourceLocal
	fdCfg.Import.LocalDir = dir

	require.NoError(t, runImportInternal(ctx, fdCfg))

	_, err := runSyncRoomsInternal(ctx, fdCfg)
	require.NoError(t, err)
}
