/*Package interval implements point-containment queries over genomic
  intervals, as found in BED files.

  Index stores any number of half-open [start, end) intervals for one
  chromosome, overlapping or not, in a red-black tree augmented with the
  maximum end coordinate of each subtree.  Insert and Search are both
  O(log n).  Search returns one containing interval, not all of them.

  GroupIndex keeps one Index per chromosome.  ReadBED and ReadBEDFromPath
  load the entries it is built from.
*/
package interval
