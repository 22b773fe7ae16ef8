// Package apt reads installed packages and their relations from the Debian
// package manager.
//
// # Overview
//
// The package manager is reached through the narrow [Source] interface:
//
//	type Source interface {
//	    ListInstalled(ctx context.Context) ([]string, error)
//	    Depends(ctx context.Context, pkg string) (string, error)
//	}
//
// [CommandSource] implements it by running "apt list --installed" and
// "apt-cache depends <pkg>". [CachedSource] decorates any Source with a
// dependency-dump cache. Tests use literal captured output instead.
//
// # Parsing
//
// [ParseInstalled] turns listing output into package identifiers.
// [ParseDepends] turns one package's dependency dump into [Edge] triples:
//
//	bash
//	  PreDepends: libc6
//	 |PreDepends: libtinfo6
//	    libncurses6
//
// yields libc6 -> bash and libtinfo6 -> bash, plus libncurses6 <-> libtinfo6
// because bare lines are alternatives in the OR group opened by the
// preceding "|" relation.
package apt
