// Package token implements the opaque bearer-token codec.
//
// A token is base64(userID:email:issuedAtMillis:nonce) where nonce is 32
// random bytes hex-encoded. The encoding carries no signature: a token is
// only as good as its exact match against the copy stored on the user row,
// which makes it a revocable capability (overwrite the stored copy and every
// outstanding token dies). Do not add a signature here without rethinking
// that revocation model.
package token

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrenko/linkfolio/internal/common"
)

// nonceBytes is the random component size; 32 bytes = 256 bits.
const nonceBytes = 32

// Issue builds a fresh token for the given user identity.
func Issue(userID int64, email string) (string, error) {
	nonce, err := common.MakeRandHexString(nonceBytes)
	if err != nil {
		return "", fmt.Errorf("nonce generation: %w", err)
	}
	raw := fmt.Sprintf("%d:%s:%d:%s", userID, email, time.Now().UnixMilli(), nonce)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Decode reverses Issue, returning the embedded user id and email.
// The nonce and issue time are not validated standalone; validity comes from
// comparing the whole token against the stored copy.
//
// Any token that does not decode to exactly four colon-separated fields with
// a numeric id fails with common.ErrMalformedToken.
func Decode(tok string) (userID int64, email string, err error) {
	raw, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return 0, "", common.ErrMalformedToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return 0, "", common.ErrMalformedToken
	}

	userID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", common.ErrMalformedToken
	}

	return userID, parts[1], nil
}
