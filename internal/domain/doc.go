// Package domain models Florida red tide (Karenia brevis) sample data and the
// status-derivation rules built on top of it.
//
// # Data Source
//
// Samples originate from the FWC (Florida Fish and Wildlife Conservation
// Commission) HAB monitoring layer, an ArcGIS MapServer exposed at
// atoll.floridamarine.org. Each feature carries a sampling site identifier
// (HAB_ID), a free-text location label, a lab abundance category, and an
// epoch-millisecond sample timestamp. The upstream adapter fetches the most
// recent records once per run; this package never performs I/O.
//
// # Abundance Categories
//
// FWC reports K. brevis abundance as free text, usually one of:
//
//	"Not Present"                           → background, safe
//	"Very Low (1,000-10,000 cells/L)"       → safe
//	"Low (10,000-100,000 cells/L)"          → caution
//	"Medium (100,000-1,000,000 cells/L)"    → avoid
//	"High (>1,000,000 cells/L)"             → avoid
//
// When a category carries a numeric range, the representative cell count is
// the integer midpoint of the first two numbers in the text; otherwise a
// per-category default applies. Unrecognized or empty text classifies as
// no_data and contributes nothing.
//
// # Hierarchy
//
// Monitored sites belong to beaches, beaches to cities, cities to regions.
// Beach status is a confidence-weighted average over matched site readings
// (distance and sample age both discount a reading). City and region status
// is strict worst-case over child beaches. The asymmetry is deliberate: the
// sample level weighs evidence, the public-facing aggregate level stays
// conservative.
//
// All functions here are pure. The caller captures a single run timestamp and
// threads it through every age computation, so a run is reproducible given the
// same sample set and clock reading.
package domain
