// Package slides lays a report out as the ordered story of the year and
// renders it as terminal text.
//
// Build decides what goes on each slide and Render draws it: section
// headers, facts, horizontal bar charts, go-pretty tables for rankings, and a
// week-by-weekday heatmap of the year's activity. The cast and crew slide
// only appears when enrichment found something.
package slides
