// Package idx reads the IDX binary dataset format used by MNIST and
// Fashion-MNIST.
//
// An IDX file starts with a fixed big-endian header followed by raw
// unsigned bytes:
//
//	Image file:
//	  [4 bytes: magic (2051)]
//	  [4 bytes: number of images N]
//	  [4 bytes: number of rows R]
//	  [4 bytes: number of cols C]
//	  [N*R*C bytes: pixels, row-major]
//
//	Label file:
//	  [4 bytes: magic (2049)]
//	  [4 bytes: number of labels N]
//	  [N bytes: labels]
//
// Files can be read eagerly into the heap or memory-mapped:
//
//	images, err := idx.ReadImages("train-images-idx3-ubyte", idx.Options{Mmap: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer images.Close()
//
//	fmt.Println(images.Count(), images.RowSize())
package idx
