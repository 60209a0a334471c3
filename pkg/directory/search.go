package directory

import (
	"context"

	"github.com/go-ldap/ldap/v3"

	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/stats"
)

// searchBufferSize bounds the entry channel of an async search. One
// entry is expected per lookup in normal operation.
const searchBufferSize = 16

// UserRecord is the ephemeral result of one directory search. It only
// lives within a single authentication attempt.
type UserRecord struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Empty reports whether the search produced no usable identity.
// Callers check essential fields rather than testing for nil.
func (r UserRecord) Empty() bool {
	return r.DisplayName == "" && r.Email == ""
}

// Search runs a subtree search below the configured base DN using the
// given filter template with the username substituted in. Entries are
// consumed as they stream in; each entry overwrites the record's
// fields, and the first error wins even when entries arrived before
// it. A completed search without entries yields an empty record.
func (s *Session) Search(ctx context.Context, creds Credentials, filterTemplate string) (UserRecord, error) {
	ctx, span := s.tracer.Start(ctx, "directory.Session.Search")
	defer span.End()

	if s.conn == nil {
		return UserRecord{}, ErrMissingConnection
	}

	filter := config.Expand(filterTemplate, creds.Username)

	req := ldap.NewSearchRequest(
		s.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		filter,
		[]string{s.cfg.NameAttr, s.cfg.MailAttr},
		nil,
	)

	stats.Directory.Add("search_reqs", 1)
	s.log.Debug().Str("basedn", s.cfg.BaseDN).Str("filter", filter).Msg("directory search")

	record := UserRecord{}
	res := s.conn.SearchAsync(ctx, req, searchBufferSize)
	for res.Next() {
		entry := res.Entry()
		if entry == nil {
			continue
		}
		record.DisplayName = entry.GetAttributeValue(s.cfg.NameAttr)
		record.Email = entry.GetAttributeValue(s.cfg.MailAttr)
	}
	if err := res.Err(); err != nil {
		stats.Directory.Add("search_errors", 1)
		s.log.Debug().Str("filter", filter).Err(err).Msg("directory search failed")
		return UserRecord{}, err
	}

	stats.Directory.Add("search_successes", 1)
	return record, nil
}
