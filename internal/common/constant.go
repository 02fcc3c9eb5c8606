package common

// DefaultCategory is assigned to contact cards created without an explicit
// category.
const DefaultCategory = "Uncategorized"
