package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID          int64
	UUID        string
	Username    string
	IsAdmin     bool
	IsModerator bool
}

// Staff users adjudicate disputes and may act on any refund.
func (u *User) Staff() bool {
	return u != nil && (u.IsAdmin || u.IsModerator)
}

// Actor is the resolved caller of a workflow operation. ShopID narrows a
// multi-shop seller to one shop when the client sends it.
type Actor struct {
	User   *User
	ShopID *int64
}

func (a *Actor) UserID() int64 {
	if a == nil || a.User == nil {
		return 0
	}
	return a.User.ID
}

type Shop struct {
	ID      int64
	OwnerID int64
	Name    string
}

type Order struct {
	ID          string
	BuyerID     int64
	ShopID      int64
	TotalAmount decimal.Decimal
}

type ActorRefKind int

const (
	ActorRefID ActorRefKind = iota + 1
	ActorRefUUID
	ActorRefUsername
)

// ActorRef is the parsed form of an identity header value.
type ActorRef struct {
	Kind     ActorRefKind
	ID       int64
	UUID     string
	Username string
}

func (r ActorRef) String() string {
	switch r.Kind {
	case ActorRefID:
		return strconv.FormatInt(r.ID, 10)
	case ActorRefUUID:
		return r.UUID
	default:
		return r.Username
	}
}

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
	{"”", "”"},
	{"“", "“"},
}

// StripQuotes trims whitespace and any wrapping straight or curly quotes.
func StripQuotes(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		stripped := false
		for _, q := range quotePairs {
			if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
				s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
				stripped = true
				break
			}
		}
		if !stripped {
			return s
		}
	}
}

// ParseActorRef accepts a numeric id, a UUID or a username, optionally
// wrapped in straight or curly quotes.
func ParseActorRef(raw string) (ActorRef, error) {
	s := StripQuotes(raw)
	if s == "" {
		return ActorRef{}, fmt.Errorf("%w: empty identity", ErrInvalidActor)
	}
	if isDigits(s) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return ActorRef{}, fmt.Errorf("%w: bad user id %q", ErrInvalidActor, s)
		}
		return ActorRef{Kind: ActorRefID, ID: id}, nil
	}
	if u, err := uuid.Parse(s); err == nil {
		return ActorRef{Kind: ActorRefUUID, UUID: u.String()}, nil
	}
	if usernamePattern.MatchString(s) {
		return ActorRef{Kind: ActorRefUsername, Username: s}, nil
	}
	return ActorRef{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidActor, s)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
