// Package persona assembles internally consistent, fictitious resident
// records for a Chinese demographic context.
//
// An Assembler draws a hometown from the geography tree, derives an
// identity number, age-appropriate education and job, a workplace, phone
// numbers, postcode and account attributes from one seeded random stream,
// then applies caller overrides and an optional field projection. A fixed
// seed reproduces the same record byte for byte on the same day.
package persona
