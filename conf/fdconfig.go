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

package conf

import (
	"crypto/rand"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/lib/redact"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultRoomBlocks is the physical room catalog of the property the front
// desk was first built for. Deployments override it with FD_ROOM_BLOCKS.
var DefaultRoomBlocks = []RoomBlock{
	{100, 115},
	{300, 313},
	{400, 413},
	{500, 513},
	{600, 613},
	{700, 709},
	{800, 809},
	{900, 909},
	{1000, 1009},
	{1100, 1109},
	{1200, 1209},
	{1300, 1309},
	{1400, 1409},
	{1500, 1509},
	{1600, 1609},
	{1700, 1705},
}

// DefaultFrontDesk is the base configuration used for the front desk server.
// It gets overridden by values in the .env file, then the result of that
// gets overridden by environment variables.
func DefaultFrontDesk() *FrontDeskConfig {
	return &FrontDeskConfig{
		Core: ConfigCore{
			Host:                "localhost",
			Port:                8080,
			JWTSecret:           rand.Text(),
			Deployment:          DeploymentTypeDev,
			LogLevel:            "INFO",
			AccessTokenLifetime: 12 * time.Hour,
			CacheControlShort:   20 * time.Second,
			MaxRequestBytes:     10 << 20,
			ActionLogEnabled:    true,
		},
		Store: DBStore{
			Type: DBStoreTypeMaria,
			MariaDB: DBStoreMaria{
				HostName:     "localhost",
				HostPort:     3306,
				Database:     "frontdesk",
				MaxOpenConns: 20,
			},
			Fake: DBStoreMaria{
				HostName: "localhost",
				// HostPort can be left as 0 for automatic port selection on startup
				HostPort:     0,
				Database:     "frontdesk-db",
				Username:     "frontdesk-db-user",
				Password:     rand.Text(),
				MaxOpenConns: 20,
			},
		},
		Hotel: Hotel{
			RoomBlocks:    slices.Clone(DefaultRoomBlocks),
			RoomsCacheTTL: 5 * time.Second,
		},
		Import: Import{
			Source:      ImportSourceNone,
			FilePattern: "Arrivals *.csv",
		},
	}
}

// Validate should be called after a FrontDeskConfig has been fully configured.
func (c *FrontDeskConfig) Validate() error {
	var errs []error
	errs = append(errs, c.Core.Deployment.Validate())
	errs = append(errs, c.Store.Type.Validate())
	if c.Store.Type == DBStoreTypeNoOp {
		c.Store.MariaDB = DBStoreMaria{}
	}
	if len(c.Hotel.RoomBlocks) == 0 {
		errs = append(errs, errors.New("at least one room block must be configured"))
	}
	for _, b := range c.Hotel.RoomBlocks {
		errs = append(errs, b.Validate())
	}
	for _, twin := range c.Hotel.TwinRooms {
		if !c.Hotel.Contains(twin) {
			errs = append(errs, fmt.Errorf("twin room %v is not in any room block", twin))
		}
	}
	if _, err := c.Hotel.Location(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, c.Import.Source.Validate())
	switch c.Import.Source {
	case ImportSourceLocal:
		if c.Import.LocalDir == "" {
			errs = append(errs, errors.New("local import source requires a local directory"))
		}
		c.Import.S3 = S3Import{}
	case ImportSourceS3:
		s3 := c.Import.S3
		if s3.AWSRegion == "" || s3.Bucket == "" {
			errs = append(errs, errors.New("s3 import source requires Default AWSRegion and Bucket"))
		}
		c.Import.LocalDir = ""
	case ImportSourceNone:
		c.Import.LocalDir = ""
		c.Import.S3 = S3Import{}
	}
	if c.Core.Deployment != DeploymentTypeDev && len(c.Staff.Users) == 0 {
		errs = append(errs, errors.New("no staff users configured, nobody would be able to log in"))
	}
	for _, u := range c.Staff.Users {
		if u.Handle == "" || u.PasswordHash == "" {
			errs = append(errs, errors.New("every staff user needs a handle and a password hash"))
		}
	}
	return errors.Join(errs...)
}

func (c *FrontDeskConfig) PrintRedacted() string {
	return c.String()
}

func (c *FrontDeskConfig) String() string {
	b, err := redact.ToBytes(c)
	if err != nil {
		return "failed to print config: " + err.Error()
	}
	return string(b)
}

type FrontDeskConfig struct {
	Core   ConfigCore
	Store  DBStore
	Hotel  Hotel
	Staff  Staff
	Import Import
}

type DeploymentType string

type DBStoreType string

type ImportSourceType string

const (
	DeploymentTypeDev        DeploymentType   = "dev"
	DeploymentTypeStaging    DeploymentType   = "staging"
	DeploymentTypeProduction DeploymentType   = "production"
	DBStoreTypeMaria         DBStoreType      = "mariadb"
	DBStoreTypeNoOp          DBStoreType      = "noop"
	DBStoreTypeFake          DBStoreType      = "fake"
	ImportSourceNone         ImportSourceType = "none"
	ImportSourceLocal        ImportSourceType = "local"
	ImportSourceS3           ImportSourceType = "s3"
)

func (d DBStoreType) Validate() error {
	switch d {
	case DBStoreTypeMaria, DBStoreTypeNoOp, DBStoreTypeFake:
		return nil
	default:
		return fmt.Errorf("unknown DB store type %v", d)
	}
}

func (d DeploymentType) Validate() error {
	switch d {
	case DeploymentTypeDev, DeploymentTypeStaging, DeploymentTypeProduction:
		return nil
	default:
		return fmt.Errorf("unknown deployment type %v", d)
	}
}

func (i ImportSourceType) Validate() error {
	switch i {
	case ImportSourceNone, ImportSourceLocal, ImportSourceS3:
		return nil
	default:
		return fmt.Errorf("unknown import source type %v", i)
	}
}

type ConfigCore struct {
	Host                string
	Port                int32
	AccessTokenLifetime time.Duration
	JWTSecret           string `redact:"true"`
	Deployment          DeploymentType

	// CacheControlShort is the duration we set in Cache-Control headers for
	// listings that change rarely, e.g. the room catalog.
	CacheControlShort time.Duration

	// LogLevel should be one of DEBUG, INFO, WARN, or ERROR
	LogLevel string

	// MaxRequestBytes is a hard limit on request sizes that will be permitted by the API server.
	MaxRequestBytes int64

	ActionLogEnabled bool
}

type DBStore struct {
	Type    DBStoreType
	MariaDB DBStoreMaria
	Fake    DBStoreMaria
}

type DBStoreMaria struct {
	HostName     string
	HostPort     int32
	Database     string
	Username     string
	Password     string `redact:"true"`
	MaxOpenConns int32
}

// RoomBlock is an inclusive range of room numbers, e.g. 100-115.
type RoomBlock struct {
	First int32
	Last  int32
}

func (b RoomBlock) Validate() error {
	if b.First <= 0 || b.Last < b.First {
		return fmt.Errorf("invalid room block %v", b)
	}
	return nil
}

func (b RoomBlock) String() string {
	return fmt.Sprintf("%d-%d", b.First, b.Last)
}

// ParseRoomBlocks reads the "100-115,300-313" format.
func ParseRoomBlocks(s string) ([]RoomBlock, error) {
	var blocks []RoomBlock
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		first, last, found := strings.Cut(part, "-")
		if !found {
			last = first
		}
		f, err := strconv.ParseInt(strings.TrimSpace(first), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("[ParseInt] room block %q: %w", part, err)
		}
		l, err := strconv.ParseInt(strings.TrimSpace(last), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("[ParseInt] room block %q: %w", part, err)
		}
		blocks = append(blocks, RoomBlock{First: int32(f), Last: int32(l)})
	}
	return blocks, nil
}

type Hotel struct {
	RoomBlocks []RoomBlock
	// TwinRooms are room numbers furnished with two twin beds.
	TwinRooms     []string
	RoomsCacheTTL time.Duration
	// TimeZone is an IANA zone name. It decides which calendar day "today"
	// and a checkout time fall on. Empty means the server's local zone.
	TimeZone string
}

// Location loads TimeZone.
func (h Hotel) Location() (*time.Location, error) {
	if h.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(h.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("[time.LoadLocation]: %w", err)
	}
	return loc, nil
}

// Contains reports whether the canonical room number falls in a configured block.
func (h Hotel) Contains(room string) bool {
	n, err := strconv.ParseInt(room, 10, 32)
	if err != nil {
		return false
	}
	for _, b := range h.RoomBlocks {
		if int32(n) >= b.First && int32(n) <= b.Last {
			return true
		}
	}
	return false
}

type Staff struct {
	Users []StaffUser
}

type StaffUser struct {
	Handle string
	// PasswordHash is a bcrypt hash, as printed by `frontdesk hash_password`.
	PasswordHash string `redact:"true"`
}

type Import struct {
	Source ImportSourceType
	// FilePattern is matched against file and object base names.
	FilePattern string
	LocalDir    string
	S3          S3Import
}

type S3Import struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string `redact:"true"`
	AWSRegion          string
	Bucket             string
	KeyPrefix          string
}
