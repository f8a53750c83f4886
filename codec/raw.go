package codec

// rawEncode returns buf unmodified: micro-chunks stored under
// format.CompressionRaw are the verbatim row-major voxel bytes.
func rawEncode(buf []byte) ([]byte, error) {
	return buf, nil
}

// rawDecode returns data unmodified.
func rawDecode(data []byte) ([]byte, error) {
	return data, nil
}
