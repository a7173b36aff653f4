package testsupport

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// WriteOggVorbis writes a minimal OGG file whose first page carries a Vorbis
// identification header with the given sample rate and channel count. The
// file is only valid enough for header probing, not for playback.
func WriteOggVorbis(t testing.TB, path string, sampleRate uint32, channels byte) {
	t.Helper()

	packet := make([]byte, 30)
	packet[0] = 0x01
	copy(packet[1:7], "vorbis")
	packet[11] = channels
	binary.LittleEndian.PutUint32(packet[12:16], sampleRate)
	packet[29] = 0x01 // framing bit

	writeOggPage(t, path, packet)
}

// WriteOggOpus writes a minimal OGG file carrying an Opus identification
// header. Probing it should classify the file as Opus, not Vorbis.
func WriteOggOpus(t testing.TB, path string, channels byte) {
	t.Helper()

	packet := make([]byte, 19)
	copy(packet[0:8], "OpusHead")
	packet[8] = 0x01
	packet[9] = channels
	binary.LittleEndian.PutUint32(packet[12:16], 48000)

	writeOggPage(t, path, packet)
}

// WriteOggUnknown writes an OGG page whose payload matches no known codec.
func WriteOggUnknown(t testing.TB, path string) {
	t.Helper()
	writeOggPage(t, path, []byte("mystery-codec-payload-padding-x"))
}

func writeOggPage(t testing.TB, path string, packet []byte) {
	t.Helper()

	header := make([]byte, 27, 28+len(packet))
	copy(header[0:4], "OggS")
	header[5] = 0x02 // beginning-of-stream page
	header[26] = 1   // one segment
	header = append(header, byte(len(packet)))
	header = append(header, packet...)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
