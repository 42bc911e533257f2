// Package classify maps file names to the semantic type shown in the gallery.
package classify

import "strings"

// Category is the coarse kind of a file.
type Category string

const (
	CategoryImage      Category = "image"
	CategoryText       Category = "text"
	CategoryDocument   Category = "document"
	CategoryArchive    Category = "archive"
	CategoryAudio      Category = "audio"
	CategoryVideo      Category = "video"
	CategoryExecutable Category = "executable"
	CategoryLibrary    Category = "library"
	CategoryDirectory  Category = "directory"
	CategoryUnknown    Category = "unknown"
)

// Descriptor describes how an entry is presented.
type Descriptor struct {
	Category    Category
	Icon        string
	Description string
}

const (
	iconImage    = "🖼️"
	iconText     = "📄"
	iconFolder   = "📁"
	iconArchive  = "📦"
	iconAudio    = "🎵"
	iconVideo    = "🎬"
	iconDocument = "📕"
)

var (
	unknownDescriptor   = Descriptor{Category: CategoryUnknown, Icon: iconText, Description: "Unknown File"}
	directoryDescriptor = Descriptor{Category: CategoryDirectory, Icon: iconFolder, Description: "Folder"}
)

var knownTypes = map[string]Descriptor{
	"jpg":  {CategoryImage, iconImage, "JPEG Image"},
	"jpeg": {CategoryImage, iconImage, "JPEG Image"},
	"png":  {CategoryImage, iconImage, "PNG Image"},
	"gif":  {CategoryImage, iconImage, "GIF Image"},
	"bmp":  {CategoryImage, iconImage, "Bitmap Image"},
	"webp": {CategoryImage, iconImage, "WebP Image"},
	"svg":  {CategoryImage, iconImage, "SVG Image"},

	"txt":  {CategoryText, iconText, "Text File"},
	"md":   {CategoryText, "📝", "Markdown File"},
	"json": {CategoryText, "📋", "JSON File"},
	"js":   {CategoryText, "📜", "JavaScript File"},
	"jsx":  {CategoryText, "📜", "React JSX File"},
	"ts":   {CategoryText, "📘", "TypeScript File"},
	"tsx":  {CategoryText, "📘", "React TSX File"},
	"css":  {CategoryText, "🎨", "CSS Stylesheet"},
	"html": {CategoryText, "🌐", "HTML File"},
	"xml":  {CategoryText, iconText, "XML File"},

	"pdf":  {CategoryDocument, iconDocument, "PDF Document"},
	"doc":  {CategoryDocument, iconText, "Word Document"},
	"docx": {CategoryDocument, iconText, "Word Document"},

	"zip": {CategoryArchive, iconArchive, "ZIP Archive"},
	"rar": {CategoryArchive, iconArchive, "RAR Archive"},
	"7z":  {CategoryArchive, iconArchive, "7-Zip Archive"},

	"mp3":  {CategoryAudio, iconAudio, "MP3 Audio"},
	"wav":  {CategoryAudio, iconAudio, "WAV Audio"},
	"flac": {CategoryAudio, iconAudio, "FLAC Audio"},

	"mp4": {CategoryVideo, iconVideo, "MP4 Video"},
	"avi": {CategoryVideo, iconVideo, "AVI Video"},
	"mkv": {CategoryVideo, iconVideo, "MKV Video"},

	"exe": {CategoryExecutable, "⚙️", "Executable File"},
	"dll": {CategoryLibrary, "🔧", "Dynamic Library"},
}

// Classify returns the descriptor for filename. The extension is everything
// after the last dot, compared case-insensitively. A name without a dot is
// looked up as a whole, so "README" is unknown while a file named "png" is an
// image.
func Classify(filename string) Descriptor {
	ext := filename
	if idx := strings.LastIndexByte(filename, '.'); idx >= 0 {
		ext = filename[idx+1:]
	}
	if d, ok := knownTypes[strings.ToLower(ext)]; ok {
		return d
	}
	return unknownDescriptor
}

// Directory returns the descriptor used for folders.
func Directory() Descriptor {
	return directoryDescriptor
}

// IsPreviewable reports whether the category has an in-app viewer.
func (d Descriptor) IsPreviewable() bool {
	return d.Category == CategoryImage || d.Category == CategoryText || d.Category == CategoryDirectory
}
