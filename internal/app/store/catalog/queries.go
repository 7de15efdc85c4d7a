package catalog

// categoriesQuery lists the categories that are attached to at least one
// resource, alphabetically.
const categoriesQuery = `query allCategories {
  entries(section: "resourcesCategories", orderBy: "title ASC", relatedToEntries: [{section: "resources"}]) {
    id,
    title
  }
}`

// resourcesQuery returns one page of resources plus two counts: the size of
// the whole section and the size of the filtered set.
const resourcesQuery = `query resources($offset: Int, $limit: Int, $catsIds: [QueryArgument], $searchQuery: String) {
  totalResources: entryCount(section: "resources"),
  totalCount: entryCount(section: "resources", relatedTo: $catsIds, search: $searchQuery),
  entries(section: "resources", offset: $offset, limit: $limit, relatedTo: $catsIds, search: $searchQuery) {
    id
    title
    ... on resources_Entry {
      commonSummary
      commonUrl
      resourceType {
        id
        title
      }
      resourceCategories {
        id
        title
      }
    }
  }
}`
