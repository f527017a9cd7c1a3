// Package convert turns a pair of IDX image and label files into a flat CSV
// dataset, one labeled sample per line:
//
//	label,pixel0,pixel1,...,pixel(R*C-1)
//	7,1,2,3,4
//	3,5,6,7,8
//
// Values are written as base-10 integers separated by single commas, with no
// header line. The output file is replaced atomically: rows are streamed into
// a temporary sibling file that is renamed over the destination only after
// every row has been written and synced. A symlink at the destination is
// written through, and an existing file keeps its permission bits.
package convert
