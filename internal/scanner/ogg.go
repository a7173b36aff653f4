package scanner

import (
	"encoding/binary"
	"io"
)

// probeHeaderSize is how much of the file the codec probe reads. The first
// OGG page plus the identification packet always fits in this window.
const probeHeaderSize = 512

type oggProbe struct {
	ValidContainer bool
	Vorbis         bool
	Opus           bool
	SampleRate     int
	Channels       int
	Error          string
}

// probeOgg inspects the leading bytes of an OGG stream and identifies the
// codec. It never fails hard; problems are reported through the Error field
// so a folder scan can keep going.
func probeOgg(r io.Reader) oggProbe {
	header := make([]byte, probeHeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return oggProbe{Error: "cannot read file: " + err.Error()}
	}
	data := header[:n]

	if len(data) < 4 || string(data[:4]) != "OggS" {
		return oggProbe{Error: "not a valid OGG file (missing OggS header)"}
	}
	// Page header is 27 bytes followed by the segment table; the codec
	// identification packet starts right after the table.
	if len(data) < 28 {
		return oggProbe{ValidContainer: true, Error: "OGG file too small to analyze"}
	}
	segments := int(data[26])
	packetStart := 27 + segments
	if len(data) <= packetStart {
		return oggProbe{ValidContainer: true, Error: "OGG file too small to identify codec"}
	}
	packet := data[packetStart:]

	switch {
	case len(packet) >= 30 && packet[0] == 0x01 && string(packet[1:7]) == "vorbis":
		return oggProbe{
			ValidContainer: true,
			Vorbis:         true,
			Channels:       int(packet[11]),
			SampleRate:     int(binary.LittleEndian.Uint32(packet[12:16])),
		}
	case len(packet) >= 8 && string(packet[:8]) == "OpusHead":
		probe := oggProbe{
			Opus:  true,
			Error: "OGG Opus detected; the game only plays OGG Vorbis, convert the file first",
		}
		if len(packet) >= 12 {
			probe.Channels = int(packet[9])
			// Opus always signals 48 kHz regardless of the input rate.
			probe.SampleRate = 48000
		}
		return probe
	default:
		return oggProbe{ValidContainer: true, Error: "unknown OGG codec, expected Vorbis"}
	}
}
