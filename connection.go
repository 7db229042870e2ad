package paging

// Connection represents a Relay-compliant GraphQL connection.
// It provides both edges (with cursors) and nodes (direct access) to support
// different query patterns.
//
// Type parameter T is the domain model type (e.g., User, Post, Organization).
//
// Example GraphQL schema:
//
//	type UserConnection {
//	  edges: [UserEdge!]!
//	  nodes: [User!]!
//	  pageInfo: PageInfo!
//	}
type Connection[T any] struct {
	// Edges contains the list of edges, each with a cursor and node.
	Edges []Edge[T] `json:"edges"`

	// Nodes provides direct access to the items without cursor overhead.
	Nodes []T `json:"nodes"`

	// PageInfo contains pagination metadata (hasNextPage, cursors, etc.)
	PageInfo PageInfo `json:"pageInfo"`
}

// Edge represents a Relay-compliant edge in a connection.
//
// Example GraphQL schema:
//
//	type UserEdge {
//	  cursor: String!
//	  node: User!
//	}
type Edge[T any] struct {
	// Cursor is the opaque position of Node in the ordered set.
	// Pass it back as After or Before to continue from this item.
	Cursor string `json:"cursor"`

	// Node is the actual data item.
	Node T `json:"node"`
}

// BuildConnection creates a Connection from a page of results.
// Each edge's cursor encodes the item's ordinal position, and the PageInfo
// is derived from the page metadata.
//
// Type parameters:
//   - From: Source type (e.g., SQLBoiler model, database row)
//   - To: Target type (e.g., domain model, GraphQL type)
//
// Example usage:
//
//	result, err := slicer.Paginate(ctx, args)
//	if err != nil {
//	    return nil, err
//	}
//	return paging.BuildConnection(result, toDomainUser)
func BuildConnection[From any, To any](
	result *PageResult[From],
	transform func(From) (To, error),
) (*Connection[To], error) {
	mapped, err := MapResult(result, transform)
	if err != nil {
		return nil, err
	}

	conn := &Connection[To]{
		Nodes:    make([]To, 0, len(mapped.Items)),
		Edges:    make([]Edge[To], 0, len(mapped.Items)),
		PageInfo: NewPageInfo(mapped),
	}

	for _, item := range mapped.Items {
		conn.Nodes = append(conn.Nodes, item.Node)
		conn.Edges = append(conn.Edges, Edge[To]{
			Cursor: item.Cursor(),
			Node:   item.Node,
		})
	}

	return conn, nil
}

