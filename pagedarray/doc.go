package pagedarray

/*

# Paged arrays

A conventional dynamic array copies its entire contents each time it
outgrows its capacity. At large sizes that copy dominates. This package
stores the elements of a resizable array in a fixed depth tree instead, so a
resize only allocates, or frees, the nodes whose coverage actually changes.

The tree always has four levels. With a W bit index type each level consumes
D = W/4 bits of the index, most significant first:

	index:   | level 0 | level 1 | level 2 | level 3 |
	          <-- D --> <-- D --> <-- D --> <-- D -->

Levels 0 to 2 are internal nodes holding up to 2^D child pointers, level 3
nodes (leaves) hold up to 2^D elements. For uint32 indices D is 8, for uint64
indices D is 16. A child at level L covers 2^(D*(3-L)) indices.

## Coverage

For every index i < Len(), every node on the path to i exists and is large
enough to hold the next step of the path. Each node is sized to the smallest
power of two not less than the number of children it needs, so growth by
small increments reallocates a node at most D+1 times.

Given coverage, element access is straight line code:

	root.children[i>>3D].children[(i>>2D)&mask].children[(i>>D)&mask].items[i&mask]

## Resizing

Resize recurses from the root. At each node it

1. grows the node buffer if the new length needs more slots
2. visits each child that was, or will be, in use, with that child's share
   of the old and new length
3. shrinks the node buffer, freeing it when no slot is needed

Growing before the visit gives new children somewhere to live. Shrinking after
the visit ensures children that are going away have freed their own
descendants first.

## Storage accounting

Footprint computes the node storage a given length implies without building
the tree. Resize uses the difference between the old and new footprints to
reserve storage from an optional Allocator before it changes anything, so a
refused reservation leaves the array untouched.

## Burden on the caller

Indices and ranges out of bounds are programming errors and panic. Pointers
returned by At are invalidated by any Resize, Append or Free. Nothing here is
safe for concurrent use; callers that share an array between go routines
must provide their own mutual exclusion.

*/
