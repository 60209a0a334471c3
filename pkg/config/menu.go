package config

// MenuEntry describes one configurable directory field for the host's
// settings UI. Purely descriptive; the host owns rendering and
// persistence.
type MenuEntry struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Default     string `json:"default"`
}

// Menu returns the configuration-menu contract for the directory
// section, one entry per configurable field.
func Menu() []MenuEntry {
	return []MenuEntry{
		{
			Key:         "hostname",
			Label:       "Directory server hostname",
			Placeholder: "ldap.example.com",
			Default:     "",
		},
		{
			Key:         "bindDNFormat",
			Label:       "Bind DN format, " + PlaceholderToken + " is replaced with the login name",
			Placeholder: "cn=" + PlaceholderToken + ",ou=people,dc=example,dc=com",
			Default:     "cn=" + PlaceholderToken + ",dc=example,dc=com",
		},
		{
			Key:         "baseDN",
			Label:       "Search base DN",
			Placeholder: "dc=example,dc=com",
			Default:     "dc=example,dc=com",
		},
		{
			Key:         "presenterFilter",
			Label:       "Presenter search filter, " + PlaceholderToken + " is replaced with the login name",
			Placeholder: "(&(objectClass=person)(cn=" + PlaceholderToken + "))",
			Default:     "(cn=" + PlaceholderToken + ")",
		},
		{
			Key:         "clientFilter",
			Label:       "Client search filter, " + PlaceholderToken + " is replaced with the login name",
			Placeholder: "(&(objectClass=person)(cn=" + PlaceholderToken + "))",
			Default:     "(cn=" + PlaceholderToken + ")",
		},
	}
}
