package i18n

// NormalizeLoc exposes locale normalization for tests.
var NormalizeLoc = normalizeLoc
