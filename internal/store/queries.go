package store

// Cypher queries for the Memgraph-backed knowledge store.
//
// Entities carry a denormalized relationship_count and frequency so a lookup
// is a single round trip; the ingestion side is responsible for keeping them
// current.

const searchExactQuery = `
MATCH (e:Entity)
WHERE toLower(e.name) = toLower($name)
RETURN e.name AS name,
       e.category AS category,
       e.relationship_count AS relationship_count,
       e.frequency AS frequency
LIMIT $limit
`

// Fuzzy matching in Cypher is approximated with case-insensitive containment
// either way round; the similarity ratio proper is computed client-side and
// filtered against the threshold there.
const searchFuzzyQuery = `
MATCH (e:Entity)
WHERE toLower(e.name) CONTAINS toLower($name)
   OR toLower($name) CONTAINS toLower(e.name)
RETURN e.name AS name,
       e.category AS category,
       e.relationship_count AS relationship_count,
       e.frequency AS frequency
LIMIT $limit
`

const relationshipExistsQuery = `
MATCH (s:Entity)-[r:RELATES_TO]->(o:Entity)
WHERE toLower(s.name) = toLower($subject)
  AND toLower(o.name) = toLower($object)
  AND r.predicate = $predicate
RETURN count(r) > 0 AS exists
`
