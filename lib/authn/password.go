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

package authn

import (
	"errors"
	"fmt"
	"golang.org/x/crypto/bcrypt"
	"strings"
)

// Verify checks a password against a stored bcrypt hash. A wrong password is
// (false, nil). A malformed stored hash is an error.
func Verify(password, storedHash string) (isValid bool, err error) {
	if !strings.HasPrefix(storedHash, "$2") {
		return false, errors.New("unsupported non-bcrypt stored password")
	}
	err = bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("[CompareHashAndPassword]: %w", err)
	}
	return true, nil
}

// Hash produces the value to put in a staff user's password hash setting.
func Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("[GenerateFromPassword]: %w", err)
	}
	return string(b), nil
}
