package catalog

import "sync"

type builtinEntry struct {
	title string
	typ   ItemType
	ref   Ref
}

var builtinEntries = []builtinEntry{
	// Core
	{"Content", TypeCore, ContentType("public.content")},
	{"Directory", TypeCore, ContentType("public.directory")},
	{"Bundle", TypeCore, ContentType("com.apple.bundle")},
	{"Application Bundle", TypeCore, ContentType("com.apple.application-bundle")},
	{"Unix Executable", TypeCore, ContentType("public.unix-executable")},
	{"System Preferences Pane", TypeCore, ContentType("com.apple.systempreference.prefpane")},

	// Documents
	{"Plain Text", TypeDocuments, ContentType("public.plain-text")},
	{"UTF-8 Plain Text", TypeDocuments, ContentType("public.utf8-plain-text")},
	{"UTF-16 Plain Text", TypeDocuments, ContentType("public.utf16-plain-text")},
	{"RTF", TypeDocuments, ContentType("public.rtf")},
	{"RTFD", TypeDocuments, ContentType("com.apple.rtfd")},
	{"HTML", TypeDocuments, ContentType("public.html")},
	{"XML", TypeDocuments, ContentType("public.xml")},
	{"YAML", TypeDocuments, ContentType("public.yaml")},
	{"JSON", TypeDocuments, ContentType("public.json")},
	{"PDF", TypeDocuments, ContentType("com.adobe.pdf")},
	{"Log File", TypeDocuments, ContentType("com.apple.log")},

	// Images
	{"Image", TypeImages, ContentType("public.image")},
	{"JPEG", TypeImages, ContentType("public.jpeg")},
	{"PNG", TypeImages, ContentType("public.png")},
	{"GIF", TypeImages, ContentType("com.compuserve.gif")},
	{"TIFF", TypeImages, ContentType("public.tiff")},
	{"ICNS", TypeImages, ContentType("com.apple.icns")},
	{"ICO", TypeImages, ContentType("com.microsoft.ico")},
	{"BMP", TypeImages, ContentType("com.microsoft.bmp")},
	{"SVG", TypeImages, ContentType("public.svg-image")},
	{"HEIC", TypeImages, ContentType("public.heic")},
	{"HEIF", TypeImages, ContentType("public.heif")},
	{"RAW Image", TypeImages, ContentType("public.camera-raw-image")},
	{"WebP", TypeImages, ContentType("org.webmproject.webp")},

	// Audio
	{"Audio File", TypeAudio, ContentType("public.audio")},
	{"MP3 Audio", TypeAudio, ContentType("public.mp3")},
	{"WAV Audio", TypeAudio, ContentType("com.microsoft.waveform-audio")},
	{"AIFF Audio", TypeAudio, ContentType("public.aiff-audio")},
	{"MIDI Sequence", TypeAudio, ContentType("public.midi-audio")},
	{"Apple Protected M4P", TypeAudio, ContentType("com.apple.protected-mpeg-4-audio")},

	// Video
	{"Movie", TypeVideo, ContentType("public.movie")},
	{"Video", TypeVideo, ContentType("public.video")},
	{"MPEG-4 Movie", TypeVideo, ContentType("public.mpeg-4")},
	{"QuickTime Movie", TypeVideo, ContentType("com.apple.quicktime-movie")},
	{"AVI", TypeVideo, ContentType("public.avi")},
	{"MPEG", TypeVideo, ContentType("public.mpeg")},

	// Archives
	{"Archive", TypeArchives, ContentType("public.archive")},
	{"ZIP Archive", TypeArchives, ContentType("public.zip-archive")},
	{"GZip Archive", TypeArchives, ContentType("org.gnu.gnu-zip-archive")},
	{"Bzip2 Archive", TypeArchives, ContentType("public.bzip2-archive")},
	{"Apple Archive", TypeArchives, ContentType("com.apple.archive")},

	// Code
	{"Source Code", TypeCode, ContentType("public.source-code")},
	{"Assembly Source", TypeCode, ContentType("public.assembly-source")},
	{"C Source", TypeCode, ContentType("public.c-source")},
	{"C Header", TypeCode, ContentType("public.c-header")},
	{"C++ Source", TypeCode, ContentType("public.c-plus-plus-source")},
	{"C++ Header", TypeCode, ContentType("public.c-plus-plus-header")},
	{"Objective-C Source", TypeCode, ContentType("public.objective-c-source")},
	{"Objective-C++ Source", TypeCode, ContentType("public.objective-c-plus-plus-source")},
	{"Swift Source", TypeCode, ContentType("public.swift-source")},
	{"JavaScript", TypeCode, ContentType("com.netscape.javascript-source")},
	{"Python Script", TypeCode, ContentType("public.python-script")},
	{"Ruby Script", TypeCode, ContentType("public.ruby-script")},
	{"PHP Script", TypeCode, ContentType("public.php-script")},
	{"Shell Script", TypeCode, ContentType("public.shell-script")},

	// Other
	{"vCard", TypeOther, ContentType("public.vcard")},
	{"Email Message", TypeOther, ContentType("com.apple.mail.email")},
	{"Internet Location", TypeOther, ContentType("com.apple.internet-location")},
	{"Bookmark", TypeOther, ContentType("com.apple.bookmark")},
	{"Font", TypeOther, ContentType("public.font")},

	// Devices
	{"Hard Disk", TypeDevices, HFSCode("hdsk")},
	{"Floppy Disk", TypeDevices, HFSCode("flpy")},
	{"CD-ROM", TypeDevices, HFSCode("cddr")},
	{"Removable Media", TypeDevices, HFSCode("rmov")},
	{"RAM Disk", TypeDevices, HFSCode("ramd")},
	{"Computer", TypeDevices, HFSCode("root")},
	{"File Server", TypeDevices, HFSCode("srvr")},
	{"Network", TypeDevices, HFSCode("gnet")},

	// Folders
	{"Folder", TypeFolders, HFSCode("fldr")},
	{"Open Folder", TypeFolders, HFSCode("ofld")},
	{"Drop Folder", TypeFolders, HFSCode("dbox")},
	{"Mounted Folder", TypeFolders, HFSCode("mntd")},
	{"Shared Folder", TypeFolders, HFSCode("shfl")},
	{"System Folder", TypeFolders, HFSCode("macs")},
	{"Applications Folder", TypeFolders, HFSCode("apps")},
	{"Documents Folder", TypeFolders, HFSCode("docs")},
	{"Preferences Folder", TypeFolders, HFSCode("prf\xc4")},
	{"Extensions Folder", TypeFolders, HFSCode("extn")},
	{"Fonts Folder", TypeFolders, HFSCode("font")},
	{"Utilities Folder", TypeFolders, HFSCode("uti\xc4")},
	{"Users Folder", TypeFolders, HFSCode("usr\xc4")},
	{"Desktop", TypeFolders, HFSCode("desk")},

	// Files
	{"Document", TypeFiles, HFSCode("docu")},
	{"Application", TypeFiles, HFSCode("APPL")},
	{"Preferences", TypeFiles, HFSCode("pref")},
	{"Query Document", TypeFiles, HFSCode("qery")},
	{"Stationery", TypeFiles, HFSCode("sdoc")},
	{"Extension", TypeFiles, HFSCode("INIT")},
	{"Desk Accessory", TypeFiles, HFSCode("APPD")},
	{"Suitcase", TypeFiles, HFSCode("suit")},

	// Trash
	{"Trash (Empty)", TypeOther, HFSCode("trsh")},
	{"Trash (Full)", TypeOther, HFSCode("ftrh")},

	// Internet
	{"HTTP Location", TypeOther, HFSCode("ilht")},
	{"FTP Location", TypeOther, HFSCode("ilft")},
	{"Mail Location", TypeOther, HFSCode("ilma")},
	{"News Location", TypeOther, HFSCode("ilnw")},
	{"Generic Internet Location", TypeOther, HFSCode("ilge")},

	// Toolbar
	{"Toolbar Customize", TypeOther, HFSCode("tcus")},
	{"Toolbar Delete", TypeOther, HFSCode("tdel")},
	{"Toolbar Favorites", TypeOther, HFSCode("tfav")},
	{"Toolbar Home", TypeOther, HFSCode("thom")},
	{"Toolbar Info", TypeOther, HFSCode("tinf")},

	// Alerts
	{"Alert Note", TypeOther, HFSCode("note")},
	{"Alert Caution", TypeOther, HFSCode("caut")},
	{"Alert Stop", TypeOther, HFSCode("stop")},
}

// builtinItems builds the read-only built-in table once.
var builtinItems = sync.OnceValue(func() []Item {
	items := make([]Item, len(builtinEntries))
	for i, e := range builtinEntries {
		items[i] = NewItem(e.title, e.typ, e.ref)
	}
	return items
})

// Builtin returns a copy of the built-in catalog entries.
func Builtin() []Item {
	items := builtinItems()
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
