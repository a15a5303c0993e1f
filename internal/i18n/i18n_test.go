package i18n

import "testing"

func TestEnglishCaptions(t *testing.T) {
	c, err := New("en")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key  string
		args []any
		want string
	}{
		{HeaderPinned, nil, "Pinned"},
		{HeaderChats, nil, "Chats"},
		{ArchiveButton, []any{1}, "1 archived chat"},
		{ArchiveButton, []any{3}, "3 archived chats"},
		{SearchStartNew, []any{"+15550100"}, "Start conversation with +15550100"},
		{ConversationsCount, []any{2}, "2 conversations"},
	}
	for _, tt := range tests {
		if got := c.T(tt.key, tt.args...); got != tt.want {
			t.Errorf("T(%s, %v) = %q, want %q", tt.key, tt.args, got, tt.want)
		}
	}
}

func TestPortugueseCaptions(t *testing.T) {
	c, err := New("pt-BR")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.T(HeaderPinned); got != "Fixadas" {
		t.Errorf("T(header.pinned) = %q, want Fixadas", got)
	}
	if got := c.T(HelpQuit); got != "Sair" {
		t.Errorf("T(help.quit) = %q, want Sair", got)
	}
	if got := c.T(HintSearch); got != "/:buscar" {
		t.Errorf("T(hint.search) = %q, want /:buscar", got)
	}
}

func TestEveryKeyTranslated(t *testing.T) {
	keys := []string{
		HeaderPinned, HeaderChats, ArchiveTitle, InboxTitle, SearchChats, SearchContacts,
		HelpTitle, PromptTitle, HelpOpen, HelpJumpFirst, HelpJumpLast, HelpQuit, HelpToggleHelp,
		HelpSearch, HelpArchive, HelpBack, HelpTab,
		HintQuit, HintHelp, HintSearch, HintArchive, HintBack, HintClose,
	}
	for _, locale := range []string{"en", "pt-BR"} {
		c, err := New(locale)
		if err != nil {
			t.Fatal(err)
		}
		for _, key := range keys {
			if got := c.T(key); got == "" || got == key {
				t.Errorf("%s: T(%s) = %q, want a caption", locale, key, got)
			}
		}
	}
}

func TestUnsupportedLocaleFallsBack(t *testing.T) {
	c, err := New("ja")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.T(HeaderChats); got != "Chats" {
		t.Errorf("T(header.chats) = %q, want Chats", got)
	}
}

func TestInvalidLocale(t *testing.T) {
	if _, err := New("not a locale!"); err == nil {
		t.Error("New() with malformed locale should fail")
	}
}
