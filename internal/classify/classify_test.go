package classify

import "testing"

func TestClassifyKnownExtensions(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Category
		desc     string
	}{
		{"png", "photo.png", CategoryImage, "PNG Image"},
		{"jpeg", "photo.jpeg", CategoryImage, "JPEG Image"},
		{"svg", "logo.svg", CategoryImage, "SVG Image"},
		{"markdown", "README.md", CategoryText, "Markdown File"},
		{"tsx", "App.tsx", CategoryText, "React TSX File"},
		{"pdf", "paper.pdf", CategoryDocument, "PDF Document"},
		{"seven zip", "bundle.7z", CategoryArchive, "7-Zip Archive"},
		{"flac", "song.flac", CategoryAudio, "FLAC Audio"},
		{"mkv", "movie.mkv", CategoryVideo, "MKV Video"},
		{"exe", "setup.exe", CategoryExecutable, "Executable File"},
		{"dll", "core.dll", CategoryLibrary, "Dynamic Library"},
		{"last dot wins", "archive.tar.zip", CategoryArchive, "ZIP Archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.filename)
			if got.Category != tt.want {
				t.Fatalf("Classify(%q).Category = %q, want %q", tt.filename, got.Category, tt.want)
			}
			if got.Description != tt.desc {
				t.Fatalf("Classify(%q).Description = %q, want %q", tt.filename, got.Description, tt.desc)
			}
			if got.Icon == "" {
				t.Fatalf("Classify(%q) returned empty icon", tt.filename)
			}
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	upper := Classify("IMG.PNG")
	lower := Classify("img.png")
	if upper != lower {
		t.Fatalf("expected IMG.PNG and img.png to classify identically, got %+v vs %+v", upper, lower)
	}
	if Classify("Notes.TxT").Category != CategoryText {
		t.Fatalf("expected mixed-case extension to be text")
	}
}

func TestClassifyUnknownDefaults(t *testing.T) {
	for _, name := range []string{"", "README", "archive.tar.gz", "trailing.", ".bashrc", "weird.PNG2"} {
		got := Classify(name)
		if got.Category != CategoryUnknown {
			t.Fatalf("Classify(%q).Category = %q, want unknown", name, got.Category)
		}
		if got.Description != "Unknown File" {
			t.Fatalf("Classify(%q).Description = %q, want %q", name, got.Description, "Unknown File")
		}
	}
}

func TestClassifyNameWithoutDotUsesWholeName(t *testing.T) {
	if got := Classify("png"); got.Category != CategoryImage {
		t.Fatalf("expected bare 'png' to be looked up as an extension, got %q", got.Category)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if Classify("a.gif") != Classify("a.gif") {
			t.Fatalf("classification changed between calls")
		}
	}
}

func TestDescriptorIsPreviewable(t *testing.T) {
	if !Classify("a.png").IsPreviewable() || !Classify("a.txt").IsPreviewable() || !Directory().IsPreviewable() {
		t.Fatalf("images, text and folders should be previewable")
	}
	if Classify("a.pdf").IsPreviewable() || Classify("a").IsPreviewable() {
		t.Fatalf("documents and unknown files should not be previewable")
	}
}
