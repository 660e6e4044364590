/*
Package parklot simulates the digital controller of a parking-lot occupancy
counter: a debounced-input counting state machine, a clock divider deriving
the display refresh tick, and a time-multiplexed 4-digit 7-segment driver.

The simulation is cycle-stepped and two-phase: registers live in
double-buffered frames, every process evaluates against the pre-edge frame
and commits to the next one, and the frames swap once per Step. This mirrors
the edge-triggered semantics of the synchronous hardware being modeled.

*/
package parklot
