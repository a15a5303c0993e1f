// Package i18n resolves the captions the conversation list shows.
package i18n

import (
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	HeaderPinned       = "header.pinned"
	HeaderChats        = "header.chats"
	ArchiveButton      = "archive.button"
	ArchiveTitle       = "archive.title"
	InboxTitle         = "inbox.title"
	SearchChats        = "search.chats"
	SearchContacts     = "search.contacts"
	SearchStartNew     = "search.start_new"
	SearchNoResults    = "search.no_results"
	ConversationsCount = "conversations.count"
)

// Key reference and menu hint keys.
const (
	HelpTitle      = "help.title"
	PromptTitle    = "prompt.title"
	HelpOpen       = "help.open"
	HelpJumpFirst  = "help.jump_first"
	HelpJumpLast   = "help.jump_last"
	HelpQuit       = "help.quit"
	HelpToggleHelp = "help.toggle_help"
	HelpSearch     = "help.search"
	HelpArchive    = "help.archive"
	HelpBack       = "help.back"
	HelpTab        = "help.tab"
	HintQuit       = "hint.quit"
	HintHelp       = "hint.help"
	HintSearch     = "hint.search"
	HintArchive    = "hint.archive"
	HintBack       = "hint.back"
	HintClose      = "hint.close"
)

// Translator looks up a caption by key, formatting args into it.
type Translator interface {
	T(key string, args ...any) string
}

// Catalog is a Translator backed by an x/text message catalog.
type Catalog struct {
	printer *message.Printer
}

// New returns a catalog for the given BCP 47 locale. Unknown or unsupported
// locales fall back to English.
func New(locale string) (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	if err := register(b); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		supported := b.Languages()
		if _, idx, conf := language.NewMatcher(supported).Match(parsed); conf != language.No {
			tag = supported[idx]
		}
	}
	return &Catalog{printer: message.NewPrinter(tag, message.Catalog(b))}, nil
}

// T implements Translator.
func (c *Catalog) T(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

type entry struct {
	key string
	msg catalog.Message
}

func register(b *catalog.Builder) error {
	tables := map[language.Tag][]entry{
		language.English: {
			{HeaderPinned, catalog.String("Pinned")},
			{HeaderChats, catalog.String("Chats")},
			{ArchiveButton, plural.Selectf(1, "%d",
				"one", "%d archived chat",
				"other", "%d archived chats")},
			{ArchiveTitle, catalog.String("Archive")},
			{InboxTitle, catalog.String("Inbox")},
			{SearchChats, catalog.String("Chats")},
			{SearchContacts, catalog.String("Contacts")},
			{SearchStartNew, catalog.String("Start conversation with %s")},
			{SearchNoResults, catalog.String("No results for \"%s\"")},
			{ConversationsCount, plural.Selectf(1, "%d",
				"one", "%d conversation",
				"other", "%d conversations")},
			{HelpTitle, catalog.String("Help")},
			{PromptTitle, catalog.String("Search")},
			{HelpOpen, catalog.String("Open the conversation, or the archive")},
			{HelpJumpFirst, catalog.String("Jump to the first conversation")},
			{HelpJumpLast, catalog.String("Jump to the last row")},
			{HelpQuit, catalog.String("Quit")},
			{HelpToggleHelp, catalog.String("Toggle this reference")},
			{HelpSearch, catalog.String("Search conversations")},
			{HelpArchive, catalog.String("Switch between inbox and archive")},
			{HelpBack, catalog.String("Clear the search, then leave the archive")},
			{HelpTab, catalog.String("Move to the search prompt")},
			{HintQuit, catalog.String("q:quit")},
			{HintHelp, catalog.String("?:help")},
			{HintSearch, catalog.String("/:search")},
			{HintArchive, catalog.String("a:archive")},
			{HintBack, catalog.String("esc:back")},
			{HintClose, catalog.String("esc:close")},
		},
		language.BrazilianPortuguese: {
			{HeaderPinned, catalog.String("Fixadas")},
			{HeaderChats, catalog.String("Conversas")},
			{ArchiveButton, plural.Selectf(1, "%d",
				"one", "%d conversa arquivada",
				"other", "%d conversas arquivadas")},
			{ArchiveTitle, catalog.String("Arquivo")},
			{InboxTitle, catalog.String("Entrada")},
			{SearchChats, catalog.String("Conversas")},
			{SearchContacts, catalog.String("Contatos")},
			{SearchStartNew, catalog.String("Iniciar conversa com %s")},
			{SearchNoResults, catalog.String("Nenhum resultado para \"%s\"")},
			{ConversationsCount, plural.Selectf(1, "%d",
				"one", "%d conversa",
				"other", "%d conversas")},
			{HelpTitle, catalog.String("Ajuda")},
			{PromptTitle, catalog.String("Buscar")},
			{HelpOpen, catalog.String("Abrir a conversa, ou o arquivo")},
			{HelpJumpFirst, catalog.String("Ir para a primeira conversa")},
			{HelpJumpLast, catalog.String("Ir para a última linha")},
			{HelpQuit, catalog.String("Sair")},
			{HelpToggleHelp, catalog.String("Mostrar ou ocultar esta referência")},
			{HelpSearch, catalog.String("Buscar conversas")},
			{HelpArchive, catalog.String("Alternar entre entrada e arquivo")},
			{HelpBack, catalog.String("Limpar a busca e depois sair do arquivo")},
			{HelpTab, catalog.String("Ir para o campo de busca")},
			{HintQuit, catalog.String("q:sair")},
			{HintHelp, catalog.String("?:ajuda")},
			{HintSearch, catalog.String("/:buscar")},
			{HintArchive, catalog.String("a:arquivo")},
			{HintBack, catalog.String("esc:voltar")},
			{HintClose, catalog.String("esc:fechar")},
		},
	}
	for tag, entries := range tables {
		for _, e := range entries {
			if err := b.Set(tag, e.key, e.msg); err != nil {
				return fmt.Errorf("set %s/%s: %w", tag, e.key, err)
			}
		}
	}
	return nil
}
