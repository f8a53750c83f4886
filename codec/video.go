package codec

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

// ffmpegPath is the external video encoder binary used for compression
// tags 2 (H.264) and 3 (AV1). Choice of codec implementation is an
// external collaborator per spec.md §1; this package only owns the pipe
// contract around it, the same boundary five82/reel draws around its
// SvtAv1EncApp subprocess (internal/encoder/encoder.go).
var ffmpegPath = "ffmpeg"

const videoFPS = 24

// videoCodecName maps a compression tag to the ffmpeg -vcodec value, per
// original_source/src/pySISF/vidlib.py's EncoderType switch.
func videoCodecName(tag format.CompressionTag) (string, error) {
	switch tag {
	case format.CompressionH264:
		return "libx264", nil
	case format.CompressionAV1:
		return "libsvtav1", nil
	default:
		return "", errs.ErrUnknownCodec
	}
}

// videoEncode delegates compression of a raw micro-chunk to an external
// ffmpeg process. The chunk is treated as sx grayscale frames of sy x sz
// pixels; U16 input is rescaled to 8-bit by dividing by the per-chunk
// maximum and multiplying by 256, matching vidlib.py's encode_stack.
func videoEncode(buf []byte, tag format.CompressionTag, shape [3]int, dtype format.Dtype) ([]byte, error) {
	vcodec, err := videoCodecName(tag)
	if err != nil {
		return nil, err
	}

	w, h := shape[1], shape[2]

	pixels, err := rescaleToU8(buf, dtype)
	if err != nil {
		return nil, err
	}

	args := []string{
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-pix_fmt", "gray",
		"-s", fmt.Sprintf("%dx%d", h, w),
		"-r", fmt.Sprintf("%d/1", videoFPS),
		"-i", "-",
		"-an",
		"-f", "rawvideo",
		"-r", fmt.Sprintf("%d/1", videoFPS),
		"-pix_fmt", "gray",
		"-vcodec", vcodec,
		"-preset", "slow",
		"-crf", "17",
		"pipe:",
	}

	out, err := runFFmpeg(args, pixels)
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, errs.ErrEncoderEmptyOutput
	}

	return out, nil
}

// videoDecode recovers a raw grayscale frame stream from an H.264/AV1
// payload produced by videoEncode, reversing the pixel format but not the
// U16 rescale (that step is intentionally lossy, per spec.md §4.1).
func videoDecode(data []byte) ([]byte, error) {
	args := []string{
		"-r", fmt.Sprintf("%d/1", videoFPS),
		"-i", "pipe:",
		"-an",
		"-f", "rawvideo",
		"-r", fmt.Sprintf("%d/1", videoFPS),
		"-pix_fmt", "gray",
		"-vcodec", "rawvideo",
		"pipe:",
	}

	return runFFmpeg(args, data)
}

// runFFmpeg starts ffmpeg with the given arguments, streams input to its
// stdin, and returns everything written to its stdout. The stdin pipe is
// always closed before waiting on the process to avoid a zombie child, per
// spec.md §5's Popen-style suspension-point requirement.
func runFFmpeg(args []string, input []byte) ([]byte, error) {
	cmd := exec.Command(ffmpegPath, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("codec: open ffmpeg stdin: %w", err)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("codec: start ffmpeg: %w", err)
	}

	_, writeErr := stdin.Write(input)
	closeErr := stdin.Close()

	waitErr := cmd.Wait()

	if writeErr != nil {
		return nil, fmt.Errorf("codec: write ffmpeg stdin: %w", writeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("codec: close ffmpeg stdin: %w", closeErr)
	}
	if waitErr != nil {
		return nil, fmt.Errorf("codec: ffmpeg: %w", waitErr)
	}

	return stdout.Bytes(), nil
}

// rescaleToU8 converts a raw micro-chunk buffer to an 8-bit grayscale pixel
// stream. U8 input passes through unchanged; U16 input is divided by its
// per-chunk maximum and multiplied by 256, matching vidlib.py's
// encode_stack (intentionally lossy).
func rescaleToU8(buf []byte, dtype format.Dtype) ([]byte, error) {
	switch dtype {
	case format.DtypeU8:
		return buf, nil
	case format.DtypeU16:
		return rescaleU16ToU8(buf), nil
	default:
		return nil, errs.ErrUnknownDtype
	}
}

func rescaleU16ToU8(buf []byte) []byte {
	n := len(buf) / 2
	vals := make([]uint16, n)

	var max uint16
	for i := 0; i < n; i++ {
		v := uint16(buf[2*i]) | uint16(buf[2*i+1])<<8
		vals[i] = v
		if v > max {
			max = v
		}
	}

	out := make([]byte, n)
	if max == 0 {
		return out
	}

	for i, v := range vals {
		scaled := (float64(v) / float64(max)) * 256
		if scaled > 255 {
			scaled = 255
		}
		out[i] = uint8(scaled)
	}

	return out
}

// IsFFmpegAvailable reports whether the ffmpeg binary used by the H264/AV1
// codec paths can be found on PATH.
func IsFFmpegAvailable() bool {
	_, err := exec.LookPath(ffmpegPath)
	return err == nil
}
