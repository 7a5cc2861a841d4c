package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ItemType groups catalog entries for display.
type ItemType int

const (
	TypeCore ItemType = iota
	TypeDevices
	TypeDocuments
	TypeImages
	TypeAudio
	TypeVideo
	TypeArchives
	TypeCode
	TypeOther
	TypeCustom
	TypeFolders
	TypeFiles
)

var itemTypeNames = [...]string{
	TypeCore:      "core",
	TypeDevices:   "devices",
	TypeDocuments: "documents",
	TypeImages:    "images",
	TypeAudio:     "audio",
	TypeVideo:     "video",
	TypeArchives:  "archives",
	TypeCode:      "code",
	TypeOther:     "other",
	TypeCustom:    "custom",
	TypeFolders:   "folders",
	TypeFiles:     "files",
}

// AllItemTypes lists every ItemType in display order.
func AllItemTypes() []ItemType {
	types := make([]ItemType, len(itemTypeNames))
	for i := range itemTypeNames {
		types[i] = ItemType(i)
	}
	return types
}

func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return fmt.Sprintf("ItemType(%d)", int(t))
	}
	return itemTypeNames[t]
}

// Title returns the capitalized group name.
func (t ItemType) Title() string {
	s := t.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseItemType converts a group name (case-insensitive) to an ItemType.
func ParseItemType(s string) (ItemType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range itemTypeNames {
		if name == s {
			return ItemType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown item type %q", s)
}

// RefKind identifies how an icon is looked up.
type RefKind int

const (
	// RefContentType looks up the icon for a uniform type identifier.
	RefContentType RefKind = iota + 1
	// RefHFSCode looks up the icon for a four-character HFS type code.
	RefHFSCode
	// RefPath looks up the icon shown for a file or folder on disk.
	RefPath
)

func (k RefKind) String() string {
	switch k {
	case RefContentType:
		return "content-type"
	case RefHFSCode:
		return "hfs-code"
	case RefPath:
		return "path"
	default:
		return fmt.Sprintf("RefKind(%d)", int(k))
	}
}

// Ref names the source of an icon.
type Ref struct {
	Kind  RefKind
	Value string
}

func (r Ref) String() string {
	return r.Kind.String() + ":" + r.Value
}

// ContentType returns a Ref for a uniform type identifier such as "public.png".
func ContentType(uti string) Ref {
	return Ref{Kind: RefContentType, Value: uti}
}

// HFSCode returns a Ref for a four-character code such as "fldr".
func HFSCode(code string) Ref {
	return Ref{Kind: RefHFSCode, Value: code}
}

// Path returns a Ref for a filesystem path.
func Path(path string) Ref {
	return Ref{Kind: RefPath, Value: path}
}

// Item is one catalog entry.
type Item struct {
	ID    uuid.UUID
	Title string
	Type  ItemType
	Ref   Ref
}

// NewItem creates an Item with a fresh ID.
func NewItem(title string, typ ItemType, ref Ref) Item {
	return Item{
		ID:    uuid.New(),
		Title: title,
		Type:  typ,
		Ref:   ref,
	}
}

// Section is a group of items sharing an ItemType.
type Section struct {
	Type  ItemType
	Items []Item
}
