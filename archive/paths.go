package archive

import (
	"fmt"
	"path/filepath"
)

const metadataFileName = "metadata.bin"

// shardName builds the chunk_i_j_k.c.1X name original_source/sisf.py uses
// for a macro-chunk at grid coordinates (i, j, k) on channel c. The "1X"
// suffix records the resolution-pyramid scale; SISF-Go fixes it to 1
// (spec.md §1/§9), so it is carried as a literal rather than a parameter.
func shardName(i, j, k, c int) string {
	return fmt.Sprintf("chunk_%d_%d_%d.%d.1X", i, j, k, c)
}

func shardPaths(dir string, i, j, k, c int) (dataPath, metaPath string) {
	name := shardName(i, j, k, c)

	return filepath.Join(dir, "data", name+".data"), filepath.Join(dir, "meta", name+".meta")
}
