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
	"fmt"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/joho/godotenv"
	"log/slog"
	"os"
	"strings"
	"time"
)

// mustInitConfig starts from the defaults, then applies the .env file and
// FD_* environment variables.
func mustInitConfig(envFileName string) *conf.FrontDeskConfig {
	return mustApplyEnvConfig(conf.DefaultFrontDesk(), envFileName)
}

// mustApplyEnvConfig reads in the .env file and ENV variables and applies those to baseCfg.
func mustApplyEnvConfig(baseCfg *conf.FrontDeskConfig, envFileName string) *conf.FrontDeskConfig {
	err := godotenv.Load(envFileName)

	if err != nil && !os.IsNotExist(err) {
		must(err)
	}
	if os.IsNotExist(err) {
		// if it's not the default
		if envFileName != envFileDefaultName {
			must(fmt.Errorf("envfile '%v' was set by the caller, but the file was not found", envFileName))
		}
		slog.Info("No .env file found. Carrying on with defaults and environment variable overrides")
	}

	if v, ok := lookupEnv("FD_HOSTNAME"); ok {
		baseCfg.Core.Host = v
	}
	if v, ok := lookupEnv("FD_PORT"); ok {
		baseCfg.Core.Port, err = conv.ParseInt32(v)
		must(err)
	}
	if v, ok := lookupEnv("FD_DEPLOYMENT"); ok {
		baseCfg.Core.Deployment = conf.DeploymentType(strings.ToLower(v))
	}
	if v, ok := lookupEnv("FD_ACCESS_TOKEN_LIFETIME"); ok {
		seconds, err := conv.ParseInt64(v)
		must(err)
		baseCfg.Core.AccessTokenLifetime = time.Duration(seconds) * time.Second
	}
	if v, ok := lookupEnv("FD_CACHE_CONTROL_SHORT"); ok {
		// Needs a unit, e.g. "20s" or "5m10s".
		dur, err := time.ParseDuration(v)
		must(err)
		baseCfg.Core.CacheControlShort = dur
	}
	if v, ok := lookupEnv("FD_LOG_LEVEL"); ok {
		baseCfg.Core.LogLevel = v
	}
	if v, ok := lookupEnv("FD_ACTION_LOG_ENABLED"); ok {
		baseCfg.Core.ActionLogEnabled = strings.EqualFold(v, "true")
	}
	if v, ok := lookupEnv("FD_MAX_REQUEST_BYTES"); ok {
		baseCfg.Core.MaxRequestBytes, err = conv.ParseInt64(v)
		must(err)
	}
	if v, ok := lookupEnv("FD_JWT_SECRET"); ok {
		baseCfg.Core.JWTSecret = v
	}
	if v, ok := lookupEnv("FD_DB_STORE_TYPE"); ok {
		baseCfg.Store.Type = conf.DBStoreType(strings.ToLower(v))
	}
	if v, ok := lookupEnv("FD_DB_HOST_NAME"); ok {
		baseCfg.Store.MariaDB.HostName = v
	}
	if v, ok := lookupEnv("FD_DB_HOST_PORT"); ok {
		baseCfg.Store.MariaDB.HostPort, err = conv.ParseInt32(v)
		must(err)
	}
	if v, ok := lookupEnv("FD_DB_DATABASE"); ok {
		baseCfg.Store.MariaDB.Database = v
	}
	if v, ok := lookupEnv("FD_DB_USER_NAME"); ok {
		baseCfg.Store.MariaDB.Username = v
	}
	if v, ok := lookupEnv("FD_DB_PASSWORD"); ok {
		baseCfg.Store.MariaDB.Password = v
	}
	if v, ok := lookupEnv("FD_ROOM_BLOCKS"); ok {
		baseCfg.Hotel.RoomBlocks, err = conf.ParseRoomBlocks(v)
		must(err)
	}
	if v, ok := lookupEnv("FD_TWIN_ROOMS"); ok {
		baseCfg.Hotel.TwinRooms = splitList(v)
	}
	if v, ok := lookupEnv("FD_ROOMS_CACHE_TTL"); ok {
		dur, err := time.ParseDuration(v)
		must(err)
		baseCfg.Hotel.RoomsCacheTTL = dur
	}
	if v, ok := lookupEnv("FD_TIME_ZONE"); ok {
		baseCfg.Hotel.TimeZone = v
	}
	// FD_STAFF is a comma-separated list of handle:bcrypthash pairs, as
	// printed by `frontdesk hash_password`.
	if v, ok := lookupEnv("FD_STAFF"); ok {
		baseCfg.Staff.Users = nil
		for _, pair := range splitList(v) {
			handle, hash, found := strings.Cut(pair, ":")
			if !found {
				must(fmt.Errorf("FD_STAFF entry %q is not of the form handle:hash", handle))
			}
			baseCfg.Staff.Users = append(baseCfg.Staff.Users, conf.StaffUser{
				Handle:       strings.TrimSpace(handle),
				PasswordHash: strings.TrimSpace(hash),
			})
		}
	}
	if v, ok := lookupEnv("FD_IMPORT_SOURCE"); ok {
		baseCfg.Import.Source = conf.ImportSourceType(strings.ToLower(v))
	}
	if v, ok := lookupEnv("FD_IMPORT_FILE_PATTERN"); ok {
		baseCfg.Import.FilePattern = v
	}
	if v, ok := lookupEnv("FD_IMPORT_LOCAL_DIR"); ok {
		baseCfg.Import.LocalDir = v
	}
	// These three AWS env vars use the standard names, hence no "FD_" prefix.
	if v, ok := lookupEnv("AWS_ACCESS_KEY_ID"); ok {
		baseCfg.Import.S3.AWSAccessKeyID = v
	}
	if v, ok := lookupEnv("AWS_SECRET_ACCESS_KEY"); ok {
		baseCfg.Import.S3.AWSSecretAccessKey = v
	}
	if v, ok := lookupEnv("AWS_REGION"); ok {
		baseCfg.Import.S3.AWSRegion = v
	}
	if v, ok := lookupEnv("FD_IMPORT_S3_BUCKET"); ok {
		baseCfg.Import.S3.Bucket = v
	}
	if v, ok := lookupEnv("FD_IMPORT_S3_KEY_PREFIX"); ok {
		baseCfg.Import.S3.KeyPrefix = v
	}

	return baseCfg
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	// When doing `docker run --env-file .env`, Docker passes in vars without removing
	// the double-quotes, e.g. FD_HOSTNAME="localhost" would actually get passed into
	// the program with the double-quotes in place.
	// https://github.com/docker/cli/issues/3630
	if strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
		v = v[1 : len(v)-1]
	}
	return v, true
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
